/*
Package ledger owns the authoritative in-memory collections of
customers, accounts, loans, and payment schedules.

PURPOSE:
  The Service is the single mutator of account and loan balances outside
  of interest application. External collaborators (HTTP facade, reports)
  only call its public operations and read its collections; they never
  touch entity internals directly.

ERROR MODEL:
  Every operation is total. Expected domain failures (missing account,
  non-positive amount, amount over ceiling, insufficient funds, wrong
  status, unsupported currency pair) come back as a boolean false or a
  nil entity; nothing in this package panics or returns an error for
  them. Audit emission is fire-and-forget.

CONCURRENCY:
  The reference behavior is single-threaded. A RWMutex serializes the
  collection accessors and every mutating operation, including the
  scheduler's due-payment pass (ExecuteDuePayments), which runs whole
  under the write lock so a cron-driven pass cannot interleave with API
  callers touching the same account. Within one locked operation the
  withdraw-then-credit transfer sequence is still not atomic in the
  rollback sense; see Transfer.
*/
package ledger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jaazielocasio-source/sistema-de-banco/audit"
	"github.com/jaazielocasio-source/sistema-de-banco/domain"
	"github.com/jaazielocasio-source/sistema-de-banco/fx"
)

// Per-operation ceilings.
var (
	MaxWithdrawal = decimal.NewFromInt(5000)
	MaxTransfer   = decimal.NewFromInt(20000)
)

// Service is the banking ledger.
type Service struct {
	mu sync.RWMutex

	customers []*domain.Customer
	accounts  []domain.Account
	loans     []*domain.Loan
	schedules []*domain.PaymentSchedule

	accountSeq  int
	customerSeq int

	aud   audit.Logger
	rates fx.Converter
	today func() domain.Date
}

// New builds a ledger with its collaborators. Pass audit.Nop{} when audit
// output is not wanted; the converter decides which currency pairs exist.
func New(aud audit.Logger, rates fx.Converter) *Service {
	if aud == nil {
		aud = audit.Nop{}
	}
	return &Service{
		accountSeq:  100000,
		customerSeq: 1,
		aud:         aud,
		rates:       rates,
		today:       domain.Today,
	}
}

// SetClock replaces the service's notion of "today". Tests use it to pin
// due-date computation.
func (s *Service) SetClock(today func() domain.Date) {
	s.today = today
}

// =============================================================================
// CUSTOMERS
// =============================================================================

// CreateCustomer assigns the next customer id and records the creation
// with the government id masked.
func (s *Service) CreateCustomer(name, email, phone, govID string) *domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &domain.Customer{
		ID:           s.customerSeq,
		Name:         name,
		Email:        email,
		Phone:        phone,
		GovernmentID: govID,
	}
	s.customerSeq++
	s.customers = append(s.customers, c)
	s.aud.Log("CUSTOMER.CREATE", fmt.Sprintf("Cliente %d creado", c.ID), govID)
	return c
}

func (s *Service) Customers() []*domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

func (s *Service) CustomerByID(id int) *domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// =============================================================================
// ACCOUNTS
// =============================================================================

// OpenAccount creates an account of the given variant with a fresh,
// never-reused account number. Returns nil for an unknown type.
func (s *Service) OpenAccount(customerID int, accountType domain.AccountType, currency string) domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	number := fmt.Sprintf("AC%d", s.accountSeq)
	a := domain.NewAccount(number, customerID, accountType, currency, s.today())
	if a == nil {
		return nil
	}
	s.accountSeq++
	s.accounts = append(s.accounts, a)
	s.aud.Log("ACCOUNT.CREATE", fmt.Sprintf("Cuenta %s creada para cliente %d (%s)", number, customerID, currency))
	return a
}

func (s *Service) Accounts() []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

func (s *Service) AccountByNumber(number string) domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findAccount(number)
}

func (s *Service) AccountsByCustomer(customerID int) []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Account
	for _, a := range s.accounts {
		if a.CustomerID() == customerID {
			out = append(out, a)
		}
	}
	return out
}

// findAccount expects the caller to hold the lock.
func (s *Service) findAccount(number string) domain.Account {
	for _, a := range s.accounts {
		if a.Number() == number {
			return a
		}
	}
	return nil
}

// SetAccountStatus transitions an account's status directly; there is no
// business-rule gating beyond existence.
func (s *Service) SetAccountStatus(number string, status domain.AccountStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findAccount(number)
	if a == nil {
		return false
	}
	a.SetStatus(status)
	s.aud.Log("ACCOUNT.STATUS", fmt.Sprintf("Cuenta %s -> %s", number, status), number)
	return true
}

func (s *Service) FreezeAccount(number string) bool {
	return s.SetAccountStatus(number, domain.StatusFrozen)
}

func (s *Service) UnfreezeAccount(number string) bool {
	return s.SetAccountStatus(number, domain.StatusActive)
}

// =============================================================================
// MONEY MOVEMENT
// =============================================================================

// Deposit looks up the account and delegates. The attempt is audited
// whether or not the account accepts it.
func (s *Service) Deposit(number string, amount decimal.Decimal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findAccount(number)
	if a == nil {
		return false
	}
	ok := a.Deposit(amount)
	s.aud.Log("TX.DEPOSIT", fmt.Sprintf("Cuenta %s Depósito %s", number, amount), number)
	return ok
}

// Withdraw rejects out-of-limit amounts before even looking the account
// up, then delegates to the variant's withdrawal rule.
func (s *Service) Withdraw(number string, amount decimal.Decimal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !amount.IsPositive() || amount.GreaterThan(MaxWithdrawal) {
		s.aud.Log("TX.WITHDRAW.LIMIT", fmt.Sprintf("Monto fuera de límite (%s) max=%s", amount, MaxWithdrawal), number)
		return false
	}
	a := s.findAccount(number)
	if a == nil {
		return false
	}
	ok := a.Withdraw(amount)
	s.aud.Log("TX.WITHDRAW", fmt.Sprintf("Cuenta %s Retiro %s", number, amount), number)
	return ok
}

// Transfer debits the source in its own currency and credits the
// destination in its own currency, converting through the rate oracle
// when the currencies differ. The debit and the credit are not atomic:
// if the credit is refused (for example a frozen destination) the debit
// is not rolled back. That mirrors the reference behavior and is
// documented rather than fixed.
func (s *Service) Transfer(from, to string, amount decimal.Decimal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !amount.IsPositive() || amount.GreaterThan(MaxTransfer) {
		s.aud.Log("TX.TRANSFER.LIMIT", fmt.Sprintf("Monto fuera de límite (%s) max=%s", amount, MaxTransfer), from)
		return false
	}
	if from == to {
		return false
	}
	src := s.findAccount(from)
	dst := s.findAccount(to)
	if src == nil || dst == nil {
		return false
	}
	if src.Status() != domain.StatusActive || dst.Status() == domain.StatusClosed {
		return false
	}

	credit := amount
	if !strings.EqualFold(src.Currency(), dst.Currency()) {
		converted, ok := s.rates.Convert(amount, src.Currency(), dst.Currency())
		if !ok {
			return false
		}
		credit = converted
	}
	if !src.Withdraw(amount) {
		return false
	}
	dst.Deposit(credit)
	s.aud.Log("TX.TRANSFER", fmt.Sprintf("%s -> %s %s", from, to, amount), from)
	return true
}

// =============================================================================
// LOANS
// =============================================================================

// CreateLoan builds a loan through the factory and registers it. Returns
// nil when the type is unknown or the terms are invalid.
func (s *Service) CreateLoan(customerID int, loanType domain.LoanType, principal decimal.Decimal, termMonths int, currency string) *domain.Loan {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := "LN" + strings.ToUpper(uuid.NewString()[:8])
	loan := domain.NewLoan(id, customerID, loanType, principal, termMonths, currency)
	if loan == nil {
		return nil
	}
	s.loans = append(s.loans, loan)
	s.aud.Log("LOAN.CREATE", fmt.Sprintf("Loan %s %s %s %dm para %d", loan.ID(), currency, principal, termMonths, customerID))
	return loan
}

func (s *Service) Loans() []*domain.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Loan, len(s.loans))
	copy(out, s.loans)
	return out
}

func (s *Service) LoanByID(id string) *domain.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLoan(id)
}

// findLoan expects the caller to hold the lock.
func (s *Service) findLoan(id string) *domain.Loan {
	for _, l := range s.loans {
		if l.ID() == id {
			return l
		}
	}
	return nil
}

func (s *Service) LoansByCustomer(customerID int) []*domain.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*domain.Loan
	for _, l := range s.loans {
		if l.CustomerID() == customerID {
			out = append(out, l)
		}
	}
	return out
}

// PayLoan applies an out-of-band payment to a loan, dated today. The
// ledger mediates the mutation so it happens under the lock and leaves
// an audit trail; collaborators never call the loan entity directly.
func (s *Service) PayLoan(id string, amount decimal.Decimal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !amount.IsPositive() {
		return false
	}
	l := s.findLoan(id)
	if l == nil {
		return false
	}
	l.ProcessPayment(amount, s.today())
	s.aud.Log("LOAN.PAYMENT", fmt.Sprintf("Loan %s pago %s restante %s", id, amount, l.Principal()))
	return true
}

// =============================================================================
// INTEREST BATCH
// =============================================================================

// ApplyInterestToAll runs one accrual pass over every account. It is the
// only supported trigger for interest and overdraft fees; an external
// time-advance driver invokes it once per simulated day or month
// boundary. Each account that moved gets its own audit event (interest
// credit, CD interest, or overdraft fee) plus the batch summary.
func (s *Service) ApplyInterestToAll(date domain.Date, monthly bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		before := a.Balance()
		a.ApplyInterest(date, monthly)
		delta := a.Balance().Sub(before)
		switch {
		case delta.IsZero():
		case a.Type() == domain.AccountCD:
			s.aud.Log("INTEREST.CD", fmt.Sprintf("Cuenta %s interés %s", a.Number(), delta), a.Number())
		case delta.IsNegative():
			s.aud.Log("OVERDRAFT.FEE", fmt.Sprintf("Cuenta %s cargo %s", a.Number(), delta.Neg()), a.Number())
		default:
			s.aud.Log("INTEREST.APPLY", fmt.Sprintf("Cuenta %s interés %s", a.Number(), delta), a.Number())
		}
	}
	s.aud.Log("INTEREST.BATCH", fmt.Sprintf("Aplicación de intereses a %d cuentas (monthly=%v)", len(s.accounts), monthly))
}

// =============================================================================
// PAYMENT SCHEDULES
// =============================================================================

// SchedulePayment is the simple form: due tomorrow, no retry policy.
func (s *Service) SchedulePayment(sourceAccount, destID string, amount decimal.Decimal, periodicity domain.Periodicity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findAccount(sourceAccount) == nil || !amount.IsPositive() {
		return false
	}
	p := domain.NewPaymentSchedule(sourceAccount, destID, amount, periodicity)
	p.StartDate = s.today()
	p.NextDate = s.today().AddDays(1)
	s.schedules = append(s.schedules, p)
	s.aud.Log("SCHEDULE.ADD", fmt.Sprintf("%s -> %s %s %s next=%s", sourceAccount, destID, amount, periodicity, p.NextDate), sourceAccount)
	return true
}

// ScheduleOptions is the full scheduling form.
type ScheduleOptions struct {
	Periodicity    domain.Periodicity
	DayOfMonth     int // 0 = not configured
	StartDate      domain.Date
	EndDate        *domain.Date
	MaxRetries     int
	RetryEveryDays int
	Name           string
	Memo           string
}

// SchedulePaymentWithOptions validates the source and computes the first
// due date: for monthly schedules with a configured day-of-month the day
// is clamped to the start month's length, and a first date already in
// the past moves one month forward.
func (s *Service) SchedulePaymentWithOptions(sourceAccount, destID string, amount decimal.Decimal, opts ScheduleOptions) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findAccount(sourceAccount) == nil || !amount.IsPositive() {
		return false
	}

	next := opts.StartDate
	if opts.DayOfMonth > 0 && opts.Periodicity == domain.PeriodMonthly {
		next = next.WithDay(opts.DayOfMonth)
		if next.Before(s.today()) {
			next = next.AddMonths(1)
		}
	}

	p := domain.NewPaymentSchedule(sourceAccount, destID, amount, opts.Periodicity)
	p.NextDate = next
	p.DayOfMonth = opts.DayOfMonth
	p.StartDate = opts.StartDate
	p.EndDate = opts.EndDate
	p.MaxRetries = max(0, opts.MaxRetries)
	p.RetryEveryDays = max(1, opts.RetryEveryDays)
	if strings.TrimSpace(opts.Name) != "" {
		p.Name = opts.Name
	}
	p.Memo = opts.Memo

	s.schedules = append(s.schedules, p)
	s.aud.Log("SCHEDULE.ADD", fmt.Sprintf("%s -> %s %s %s next=%s retries=%d", sourceAccount, destID, amount, p.Periodicity, p.NextDate, p.MaxRetries), sourceAccount)
	return true
}

// Schedules returns the schedule records in insertion order. The records
// are shared with the scheduler, which mutates them during execution;
// presentation layers wanting due-date order sort their own copy.
func (s *Service) Schedules() []*domain.PaymentSchedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.PaymentSchedule, len(s.schedules))
	copy(out, s.schedules)
	return out
}

// CancelSchedule deactivates a schedule; records are never deleted.
func (s *Service) CancelSchedule(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.schedules {
		if p.ID == id {
			p.Active = false
			s.aud.Log("SCHEDULE.CANCEL", fmt.Sprintf("%s -> %s cancelado", p.SourceAccount, p.DestinationID), p.SourceAccount)
			return true
		}
	}
	return false
}

// =============================================================================
// DUE-PAYMENT EXECUTION
// =============================================================================

// ExecuteDuePayments attempts every active, due schedule exactly once
// and returns how many executed successfully (skips and retries do not
// count). The whole pass holds the write lock: schedule-record updates,
// source debits, and destination credits must not interleave with other
// callers. A nil calendar means the default fixed-holiday calendar.
//
// The per-schedule state machine, the business-day adjustment, and the
// retry policy are documented on package scheduler, which is the
// intended entry point for running a pass.
func (s *Service) ExecuteDuePayments(asOf domain.Date, cal domain.HolidayCalendar) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cal == nil {
		cal = domain.FixedHolidays{}
	}
	count := 0
	for _, p := range s.schedules {
		if !p.Active {
			continue
		}

		// Past the end date: terminal.
		if p.EndDate != nil && asOf.After(*p.EndDate) {
			p.Active = false
			p.LastResult = domain.ScheduleFinished
			continue
		}

		// Keep the due date business-day adjusted, persisting the shift.
		adjusted := domain.NextBusinessDay(p.NextDate, cal)
		if !adjusted.Equal(p.NextDate) {
			s.aud.Log("SCHEDULE.ADJUST", fmt.Sprintf("Ajustado a día hábil %s->%s", p.NextDate, adjusted), p.SourceAccount)
			p.NextDate = adjusted
		}

		if p.NextDate.After(asOf) {
			continue // not yet due
		}

		// Destination is polymorphic: account number first, then loan id.
		destAccount := s.findAccount(p.DestinationID)
		destLoan := s.findLoan(p.DestinationID)

		src := s.findAccount(p.SourceAccount)
		if src == nil {
			s.aud.Log("SCHEDULE.SKIP", "Cuenta origen no encontrada", p.SourceAccount)
			continue
		}

		if !src.Withdraw(p.Amount) {
			attempt := asOf
			p.LastAttempt = &attempt
			p.LastResult = domain.ScheduleInsufficientFunds
			p.RetriesDone++
			s.aud.Log("SCHEDULE.SKIP", "Fondos insuficientes", p.SourceAccount)
			if p.RetriesDone <= p.MaxRetries {
				p.NextDate = domain.NextBusinessDay(asOf.AddDays(p.RetryEveryDays), cal)
				s.aud.Log("SCHEDULE.RETRY", fmt.Sprintf("Retry #%d %s->%s next=%s", p.RetriesDone, p.SourceAccount, p.DestinationID, p.NextDate), p.SourceAccount)
			} else if destLoan != nil {
				destLoan.RegisterMissedPayment()
			}
			continue
		}

		switch {
		case destAccount != nil:
			destAccount.Deposit(p.Amount)
		case destLoan != nil:
			destLoan.ProcessPayment(p.Amount, asOf)
		default:
			// Funds already left the source; see the scheduler package
			// comment on this preserved gap.
			s.aud.Log("SCHEDULE.SKIP", "Destino no encontrado", p.DestinationID)
			p.LastResult = domain.ScheduleDestMissing
			continue
		}

		attempt := asOf
		p.LastAttempt = &attempt
		p.LastResult = domain.ScheduleOK
		p.RetriesDone = 0

		if p.Periodicity == domain.PeriodDaily {
			p.NextDate = p.NextDate.AddDays(1)
		} else {
			p.NextDate = p.NextDate.AddMonths(1)
			if p.DayOfMonth > 0 {
				p.NextDate = p.NextDate.WithDay(p.DayOfMonth)
			}
		}
		p.NextDate = domain.NextBusinessDay(p.NextDate, cal)
		s.aud.Log("SCHEDULE.EXEC", fmt.Sprintf("%s->%s %s next=%s", p.SourceAccount, p.DestinationID, p.Amount, p.NextDate), p.SourceAccount)
		count++
	}
	return count
}
