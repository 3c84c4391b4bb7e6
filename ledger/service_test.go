package ledger_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaazielocasio-source/sistema-de-banco/audit"
	"github.com/jaazielocasio-source/sistema-de-banco/domain"
	"github.com/jaazielocasio-source/sistema-de-banco/fx"
	"github.com/jaazielocasio-source/sistema-de-banco/ledger"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newTestBank(t *testing.T) (*ledger.Service, *audit.Recorder) {
	t.Helper()
	rec := &audit.Recorder{}
	bank := ledger.New(rec, fx.NewStaticTable())
	return bank, rec
}

func openFunded(t *testing.T, bank *ledger.Service, accountType domain.AccountType, currency string, balance int64) domain.Account {
	t.Helper()
	c := bank.CreateCustomer("Test", "test@example.com", "", "GOB-000")
	a := bank.OpenAccount(c.ID, accountType, currency)
	require.NotNil(t, a)
	if balance > 0 {
		require.True(t, bank.Deposit(a.Number(), d(balance)))
	}
	return a
}

func hasEvent(rec *audit.Recorder, action string) bool {
	for _, e := range rec.Events {
		if e.Action == action {
			return true
		}
	}
	return false
}

// =============================================================================
// CUSTOMERS AND ACCOUNTS
// =============================================================================

func TestCreateCustomer_SequentialIDs(t *testing.T) {
	bank, rec := newTestBank(t)

	a := bank.CreateCustomer("Ana", "ana@example.com", "", "GOB-111")
	b := bank.CreateCustomer("Luis", "luis@example.com", "", "GOB-222")

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.True(t, hasEvent(rec, "CUSTOMER.CREATE"))
}

func TestOpenAccount_NumbersNeverReused(t *testing.T) {
	bank, _ := newTestBank(t)
	c := bank.CreateCustomer("Ana", "", "", "")

	a := bank.OpenAccount(c.ID, domain.AccountSavings, "USD")
	b := bank.OpenAccount(c.ID, domain.AccountChecking, "USD")

	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, "AC100000", a.Number())
	assert.Equal(t, "AC100001", b.Number())
}

func TestOpenAccount_UnknownType_Nil(t *testing.T) {
	bank, _ := newTestBank(t)
	c := bank.CreateCustomer("Ana", "", "", "")

	assert.Nil(t, bank.OpenAccount(c.ID, "bitcoin", "USD"))
}

func TestAccountsByCustomer_FiltersOwnership(t *testing.T) {
	bank, _ := newTestBank(t)
	ana := bank.CreateCustomer("Ana", "", "", "")
	luis := bank.CreateCustomer("Luis", "", "", "")
	bank.OpenAccount(ana.ID, domain.AccountSavings, "USD")
	bank.OpenAccount(ana.ID, domain.AccountChecking, "USD")
	bank.OpenAccount(luis.ID, domain.AccountSavings, "USD")

	assert.Len(t, bank.AccountsByCustomer(ana.ID), 2)
	assert.Len(t, bank.AccountsByCustomer(luis.ID), 1)
}

// =============================================================================
// WITHDRAWAL CEILING
// =============================================================================

func TestWithdraw_OverCeiling_RejectedBeforeLookup(t *testing.T) {
	// GIVEN: An account with plenty of funds
	// WHEN: A withdrawal above the per-operation ceiling is attempted
	// THEN: It is rejected and the limit breach is audited

	bank, rec := newTestBank(t)
	a := openFunded(t, bank, domain.AccountChecking, "USD", 0)
	// Two deposits to get over the ceiling without hitting it.
	require.True(t, bank.Deposit(a.Number(), d(4000)))
	require.True(t, bank.Deposit(a.Number(), d(4000)))

	assert.False(t, bank.Withdraw(a.Number(), decimal.RequireFromString("5000.01")))
	assert.True(t, a.Balance().Equal(d(8000)))
	assert.True(t, hasEvent(rec, "TX.WITHDRAW.LIMIT"))
}

func TestWithdraw_AtCeiling_Allowed(t *testing.T) {
	bank, _ := newTestBank(t)
	a := openFunded(t, bank, domain.AccountChecking, "USD", 0)
	require.True(t, bank.Deposit(a.Number(), d(3000)))
	require.True(t, bank.Deposit(a.Number(), d(3000)))

	assert.True(t, bank.Withdraw(a.Number(), d(5000)))
	assert.True(t, a.Balance().Equal(d(1000)))
}

func TestDeposit_MissingAccount_False(t *testing.T) {
	bank, _ := newTestBank(t)

	assert.False(t, bank.Deposit("AC999999", d(10)))
}

// =============================================================================
// TRANSFERS
// =============================================================================

func TestTransfer_MovesFundsAndRecordsBothLegs(t *testing.T) {
	// GIVEN: A1 holds 1200, B1 holds 300
	// WHEN: 100 moves A1 -> B1
	// THEN: Balances are 1100 / 400 and each account logs one leg

	bank, _ := newTestBank(t)
	src := openFunded(t, bank, domain.AccountChecking, "USD", 1200)
	dst := openFunded(t, bank, domain.AccountChecking, "USD", 300)

	ok := bank.Transfer(src.Number(), dst.Number(), d(100))

	require.True(t, ok)
	assert.True(t, src.Balance().Equal(d(1100)))
	assert.True(t, dst.Balance().Equal(d(400)))
	assert.Len(t, src.Transactions(), 2) // deposit + transfer debit
	assert.Len(t, dst.Transactions(), 2) // deposit + transfer credit
}

func TestTransfer_SameAccount_Rejected(t *testing.T) {
	bank, _ := newTestBank(t)
	a := openFunded(t, bank, domain.AccountChecking, "USD", 500)

	assert.False(t, bank.Transfer(a.Number(), a.Number(), d(100)))
	assert.True(t, a.Balance().Equal(d(500)))
}

func TestTransfer_OverCeiling_Rejected(t *testing.T) {
	bank, rec := newTestBank(t)
	src := openFunded(t, bank, domain.AccountChecking, "USD", 1000)
	dst := openFunded(t, bank, domain.AccountChecking, "USD", 0)

	assert.False(t, bank.Transfer(src.Number(), dst.Number(), decimal.RequireFromString("20000.01")))
	assert.True(t, hasEvent(rec, "TX.TRANSFER.LIMIT"))
}

func TestTransfer_MissingDestination_RejectedBeforeDebit(t *testing.T) {
	bank, _ := newTestBank(t)
	src := openFunded(t, bank, domain.AccountChecking, "USD", 500)

	assert.False(t, bank.Transfer(src.Number(), "AC999999", d(100)))
	assert.True(t, src.Balance().Equal(d(500)))
}

func TestTransfer_FrozenSource_Rejected(t *testing.T) {
	bank, _ := newTestBank(t)
	src := openFunded(t, bank, domain.AccountChecking, "USD", 500)
	dst := openFunded(t, bank, domain.AccountChecking, "USD", 0)
	require.True(t, bank.FreezeAccount(src.Number()))

	assert.False(t, bank.Transfer(src.Number(), dst.Number(), d(100)))
}

func TestTransfer_InsufficientFunds_NoPartialState(t *testing.T) {
	bank, _ := newTestBank(t)
	src := openFunded(t, bank, domain.AccountSavings, "USD", 50)
	dst := openFunded(t, bank, domain.AccountChecking, "USD", 0)

	assert.False(t, bank.Transfer(src.Number(), dst.Number(), d(100)))
	assert.True(t, src.Balance().Equal(d(50)))
	assert.True(t, dst.Balance().IsZero())
}

func TestTransfer_CrossCurrency_ConvertsThroughUSDTable(t *testing.T) {
	// USD -> EUR at the seeded 0.92 per-USD rate.
	bank, _ := newTestBank(t)
	src := openFunded(t, bank, domain.AccountChecking, "USD", 500)
	dst := openFunded(t, bank, domain.AccountChecking, "EUR", 0)

	require.True(t, bank.Transfer(src.Number(), dst.Number(), d(100)))

	assert.True(t, src.Balance().Equal(d(400)))
	assert.True(t, dst.Balance().Equal(decimal.RequireFromString("92")), "got %s", dst.Balance())
}

func TestTransfer_UnsupportedCurrencyPair_Rejected(t *testing.T) {
	bank, _ := newTestBank(t)
	src := openFunded(t, bank, domain.AccountChecking, "USD", 500)
	dst := openFunded(t, bank, domain.AccountChecking, "XXX", 0)

	assert.False(t, bank.Transfer(src.Number(), dst.Number(), d(100)))
	assert.True(t, src.Balance().Equal(d(500)))
}

// =============================================================================
// LOANS
// =============================================================================

func TestCreateLoan_AssignsPrefixedID(t *testing.T) {
	bank, rec := newTestBank(t)
	c := bank.CreateCustomer("Ana", "", "", "")

	l := bank.CreateLoan(c.ID, domain.LoanAuto, d(15000), 48, "USD")

	require.NotNil(t, l)
	assert.True(t, strings.HasPrefix(l.ID(), "LN"))
	assert.NotNil(t, bank.LoanByID(l.ID()))
	assert.True(t, hasEvent(rec, "LOAN.CREATE"))
}

func TestCreateLoan_InvalidTerms_Nil(t *testing.T) {
	bank, _ := newTestBank(t)
	c := bank.CreateCustomer("Ana", "", "", "")

	assert.Nil(t, bank.CreateLoan(c.ID, domain.LoanAuto, d(-1), 48, "USD"))
	assert.Nil(t, bank.CreateLoan(c.ID, "boat", d(1000), 48, "USD"))
}

func TestPayLoan_ReducesPrincipalAndAudits(t *testing.T) {
	// GIVEN: A current loan of 1000
	// WHEN: A 200 payment goes through the ledger
	// THEN: The principal drops to 800 and a payment event is recorded

	bank, rec := newTestBank(t)
	c := bank.CreateCustomer("Ana", "", "", "")
	loan := bank.CreateLoan(c.ID, domain.LoanPersonal, d(1000), 12, "USD")
	require.NotNil(t, loan)

	require.True(t, bank.PayLoan(loan.ID(), d(200)))

	assert.True(t, loan.Principal().Equal(d(800)))
	assert.Equal(t, domain.LoanCurrent, loan.Status())
	assert.True(t, hasEvent(rec, "LOAN.PAYMENT"))
}

func TestPayLoan_UnknownLoan_False(t *testing.T) {
	bank, rec := newTestBank(t)

	assert.False(t, bank.PayLoan("LNMISSING", d(200)))
	assert.False(t, hasEvent(rec, "LOAN.PAYMENT"))
}

func TestPayLoan_NonPositiveAmount_False(t *testing.T) {
	bank, _ := newTestBank(t)
	c := bank.CreateCustomer("Ana", "", "", "")
	loan := bank.CreateLoan(c.ID, domain.LoanPersonal, d(1000), 12, "USD")
	require.NotNil(t, loan)

	assert.False(t, bank.PayLoan(loan.ID(), d(0)))
	assert.False(t, bank.PayLoan(loan.ID(), d(-50)))
	assert.True(t, loan.Principal().Equal(d(1000)))
}

// =============================================================================
// INTEREST BATCH
// =============================================================================

func TestApplyInterestToAll_TouchesEveryAccount(t *testing.T) {
	bank, rec := newTestBank(t)
	savings := openFunded(t, bank, domain.AccountSavings, "USD", 1200)
	checking := openFunded(t, bank, domain.AccountChecking, "USD", 100)
	require.True(t, bank.Withdraw(checking.Number(), d(200))) // -100, overdrawn

	bank.ApplyInterestToAll(domain.NewDate(2026, time.March, 15), true)

	assert.True(t, savings.Balance().GreaterThan(d(1200)))
	assert.True(t, checking.Balance().LessThan(d(-100)))
	assert.True(t, hasEvent(rec, "INTEREST.BATCH"))
}

func TestApplyInterestToAll_EmitsPerAccountEvents(t *testing.T) {
	// GIVEN: A savings account earning interest, an overdrawn checking
	//        account owing a fee, a CD, and an idle empty checking account
	// WHEN: A monthly accrual pass runs
	// THEN: Each account that moved gets its own event; the idle account
	//       gets none

	bank, rec := newTestBank(t)
	savings := openFunded(t, bank, domain.AccountSavings, "USD", 1200)
	checking := openFunded(t, bank, domain.AccountChecking, "USD", 100)
	require.True(t, bank.Withdraw(checking.Number(), d(200))) // -100, overdrawn
	cd := openFunded(t, bank, domain.AccountCD, "USD", 1000)
	openFunded(t, bank, domain.AccountChecking, "USD", 0)

	bank.ApplyInterestToAll(domain.NewDate(2026, time.March, 15), true)

	var applies, fees, cds int
	for _, e := range rec.Events {
		switch e.Action {
		case "INTEREST.APPLY":
			applies++
			assert.Contains(t, e.Message, savings.Number())
		case "OVERDRAFT.FEE":
			fees++
			assert.Contains(t, e.Message, checking.Number())
		case "INTEREST.CD":
			cds++
			assert.Contains(t, e.Message, cd.Number())
		}
	}
	assert.Equal(t, 1, applies)
	assert.Equal(t, 1, fees)
	assert.Equal(t, 1, cds)
}

// =============================================================================
// PAYMENT SCHEDULES
// =============================================================================

func TestSchedulePayment_SimpleForm_DueTomorrow(t *testing.T) {
	bank, _ := newTestBank(t)
	a := openFunded(t, bank, domain.AccountChecking, "USD", 500)
	today := domain.NewDate(2026, time.September, 1)
	bank.SetClock(func() domain.Date { return today })

	require.True(t, bank.SchedulePayment(a.Number(), "AC999999", d(50), domain.PeriodDaily))

	schedules := bank.Schedules()
	require.Len(t, schedules, 1)
	assert.Equal(t, "2026-09-02", schedules[0].NextDate.String())
	assert.True(t, schedules[0].Active)
}

func TestSchedulePayment_MissingSource_Rejected(t *testing.T) {
	bank, _ := newTestBank(t)

	assert.False(t, bank.SchedulePayment("AC999999", "AC888888", d(50), domain.PeriodDaily))
}

func TestScheduleWithOptions_DayOfMonthClampedToMonthLength(t *testing.T) {
	// GIVEN: Today is Feb 10 and the schedule wants day 31
	// WHEN: The first due date is computed
	// THEN: It clamps to Feb 28

	bank, _ := newTestBank(t)
	a := openFunded(t, bank, domain.AccountChecking, "USD", 500)
	today := domain.NewDate(2026, time.February, 10)
	bank.SetClock(func() domain.Date { return today })

	ok := bank.SchedulePaymentWithOptions(a.Number(), "AC999999", d(50), ledger.ScheduleOptions{
		Periodicity: domain.PeriodMonthly,
		DayOfMonth:  31,
		StartDate:   today,
	})

	require.True(t, ok)
	assert.Equal(t, "2026-02-28", bank.Schedules()[0].NextDate.String())
}

func TestScheduleWithOptions_FirstDateInPast_MovesOneMonthForward(t *testing.T) {
	bank, _ := newTestBank(t)
	a := openFunded(t, bank, domain.AccountChecking, "USD", 500)
	today := domain.NewDate(2026, time.September, 20)
	bank.SetClock(func() domain.Date { return today })

	ok := bank.SchedulePaymentWithOptions(a.Number(), "AC999999", d(50), ledger.ScheduleOptions{
		Periodicity: domain.PeriodMonthly,
		DayOfMonth:  15, // Sep 15 already passed
		StartDate:   today,
	})

	require.True(t, ok)
	assert.Equal(t, "2026-10-15", bank.Schedules()[0].NextDate.String())
}

func TestCancelSchedule_DeactivatesWithoutDeleting(t *testing.T) {
	bank, rec := newTestBank(t)
	a := openFunded(t, bank, domain.AccountChecking, "USD", 500)
	require.True(t, bank.SchedulePayment(a.Number(), "AC999999", d(50), domain.PeriodDaily))
	id := bank.Schedules()[0].ID

	require.True(t, bank.CancelSchedule(id))

	require.Len(t, bank.Schedules(), 1)
	assert.False(t, bank.Schedules()[0].Active)
	assert.True(t, hasEvent(rec, "SCHEDULE.CANCEL"))
}

func TestCancelSchedule_UnknownID_False(t *testing.T) {
	bank, _ := newTestBank(t)

	assert.False(t, bank.CancelSchedule("nope"))
}

// =============================================================================
// AUDIT MASKING
// =============================================================================

func TestCreateCustomer_GovernmentIDMaskedInAudit(t *testing.T) {
	bank, rec := newTestBank(t)

	bank.CreateCustomer("Ana", "", "", "GOB-1122334455")

	require.NotEmpty(t, rec.Events)
	event := rec.Events[0]
	assert.Equal(t, "**********4455", event.Masked)
	assert.NotContains(t, event.Message, "1122334455")
}
