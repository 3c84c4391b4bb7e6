package domain

import "github.com/shopspring/decimal"

// =============================================================================
// SAVINGS - balance must stay >= 0, capped withdrawals per month
// =============================================================================

type SavingsAccount struct {
	accountBase
	withdrawalsThisMonth int
}

func NewSavingsAccount(number string, customerID int, currency string) *SavingsAccount {
	return &SavingsAccount{accountBase: newAccountBase(number, customerID, currency, SavingsInterest{})}
}

func (a *SavingsAccount) Type() AccountType { return AccountSavings }

func (a *SavingsAccount) WithdrawalsThisMonth() int { return a.withdrawalsThisMonth }

func (a *SavingsAccount) Deposit(amount decimal.Decimal) bool { return a.deposit(amount) }

func (a *SavingsAccount) Withdraw(amount decimal.Decimal) bool {
	if a.withdrawalsThisMonth >= SavingsMonthlyWithdrawalLimit {
		return false
	}
	ok := a.withdrawWith(a.sufficient, amount)
	if ok {
		a.withdrawalsThisMonth++
	}
	return ok
}

func (a *SavingsAccount) sufficient(amount decimal.Decimal) bool {
	return a.balance.Sub(amount).Sign() >= 0
}

// ApplyInterest also resets the monthly withdrawal counter when the
// monthly accrual lands on the first of a month.
func (a *SavingsAccount) ApplyInterest(date Date, monthly bool) {
	a.applyStrategy(a, date, monthly)
	if monthly && date.Day() == 1 {
		a.withdrawalsThisMonth = 0
	}
}

func (a *SavingsAccount) ProcessPayment(amount decimal.Decimal, _ Date) bool {
	return a.Withdraw(amount)
}

// =============================================================================
// CHECKING - may overdraw up to a per-account limit
// =============================================================================

type CheckingAccount struct {
	accountBase
	overdraftLimit decimal.Decimal
}

func NewCheckingAccount(number string, customerID int, currency string) *CheckingAccount {
	return &CheckingAccount{
		accountBase:    newAccountBase(number, customerID, currency, CheckingInterest{}),
		overdraftLimit: DefaultOverdraftLimit,
	}
}

func (a *CheckingAccount) Type() AccountType { return AccountChecking }

func (a *CheckingAccount) OverdraftLimit() decimal.Decimal { return a.overdraftLimit }

func (a *CheckingAccount) SetOverdraftLimit(limit decimal.Decimal) { a.overdraftLimit = limit }

func (a *CheckingAccount) Deposit(amount decimal.Decimal) bool { return a.deposit(amount) }

func (a *CheckingAccount) Withdraw(amount decimal.Decimal) bool {
	return a.withdrawWith(a.sufficient, amount)
}

func (a *CheckingAccount) sufficient(amount decimal.Decimal) bool {
	return a.balance.Sub(amount).GreaterThanOrEqual(a.overdraftLimit.Neg())
}

func (a *CheckingAccount) ApplyInterest(date Date, monthly bool) {
	a.applyStrategy(a, date, monthly)
}

func (a *CheckingAccount) ProcessPayment(amount decimal.Decimal, _ Date) bool {
	return a.Withdraw(amount)
}

// =============================================================================
// CERTIFICATE OF DEPOSIT - penalty for withdrawing before term
// =============================================================================

type CertificateOfDeposit struct {
	accountBase
	termMonths int
	openDate   Date
}

func NewCertificateOfDeposit(number string, customerID int, currency string, termMonths int, openDate Date) *CertificateOfDeposit {
	return &CertificateOfDeposit{
		accountBase: newAccountBase(number, customerID, currency, CdInterest{}),
		termMonths:  termMonths,
		openDate:    openDate,
	}
}

func (a *CertificateOfDeposit) Type() AccountType { return AccountCD }

func (a *CertificateOfDeposit) TermMonths() int { return a.termMonths }

func (a *CertificateOfDeposit) OpenDate() Date { return a.openDate }

func (a *CertificateOfDeposit) Deposit(amount decimal.Decimal) bool { return a.deposit(amount) }

// Withdraw charges an early-withdrawal penalty while the CD is inside its
// term (termMonths × 30 days from open). The penalty is debited together
// with the withdrawal and recorded as a separate Fee transaction; the
// sufficiency check covers amount plus penalty so the balance cannot go
// negative.
func (a *CertificateOfDeposit) Withdraw(amount decimal.Decimal) bool {
	if a.status != StatusActive || !amount.IsPositive() {
		return false
	}
	if a.inTerm(Today()) {
		penalty := amount.Mul(CdEarlyWithdrawalPenaltyRate)
		total := amount.Add(penalty)
		if !a.sufficient(total) {
			return false
		}
		a.balance = a.balance.Sub(total)
		a.record(TxWithdrawal, amount, "Retiro CD (anticipado)", "")
		a.record(TxFee, penalty, "Penalidad retiro CD", "")
		return true
	}
	return a.withdrawWith(a.sufficient, amount)
}

func (a *CertificateOfDeposit) inTerm(today Date) bool {
	return DaysBetween(a.openDate, today) < a.termMonths*30
}

func (a *CertificateOfDeposit) sufficient(amount decimal.Decimal) bool {
	return a.balance.Sub(amount).Sign() >= 0
}

func (a *CertificateOfDeposit) ApplyInterest(date Date, monthly bool) {
	a.applyStrategy(a, date, monthly)
}

func (a *CertificateOfDeposit) ProcessPayment(amount decimal.Decimal, _ Date) bool {
	return a.Withdraw(amount)
}
