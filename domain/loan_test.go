package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaazielocasio-source/sistema-de-banco/domain"
)

// =============================================================================
// INSTALLMENT
// =============================================================================

func TestInstallment_StandardAnnuity(t *testing.T) {
	// 12000 at 12% APR over 12 months: the textbook annuity payment is
	// 1066.19 to the cent.
	l := domain.NewLoan("LN1", 1, domain.LoanPersonal, d(12000), 12, "USD")
	require.NotNil(t, l)

	assert.True(t, l.Installment().Equal(ds("1066.19")), "got %s", l.Installment())
}

func TestInstallment_ZeroRate_PrincipalOverTerm(t *testing.T) {
	l := domain.NewLoanWithRate("LN1", 1, domain.LoanPersonal, d(1200), 12, decimal.Zero, "USD")
	require.NotNil(t, l)

	assert.True(t, l.Installment().Equal(d(100)))
}

// =============================================================================
// AMORTIZATION TABLE
// =============================================================================

func TestAmortizationTable_RowCountAndFinalBalanceZero(t *testing.T) {
	l := domain.NewLoan("LN1", 1, domain.LoanAuto, d(15000), 48, "USD")
	require.NotNil(t, l)

	table := l.AmortizationTable()

	require.Len(t, table, 48)
	assert.True(t, table[47].RemainingBalance.IsZero(), "final balance %s", table[47].RemainingBalance)
}

func TestAmortizationTable_PrincipalPortionsSumToPrincipal(t *testing.T) {
	l := domain.NewLoan("LN1", 1, domain.LoanMortgage, d(250000), 360, "USD")
	require.NotNil(t, l)

	sum := decimal.Zero
	for _, row := range l.AmortizationTable() {
		sum = sum.Add(row.PrincipalPortion)
	}

	assert.True(t, sum.Equal(d(250000)), "principal portions sum to %s", sum)
}

func TestAmortizationTable_BalanceDecreasesMonotonically(t *testing.T) {
	l := domain.NewLoan("LN1", 1, domain.LoanPersonal, d(5000), 24, "USD")
	require.NotNil(t, l)

	prev := l.Principal()
	for i, row := range l.AmortizationTable() {
		assert.True(t, row.RemainingBalance.LessThan(prev), "row %d: %s >= %s", i, row.RemainingBalance, prev)
		prev = row.RemainingBalance
	}
}

func TestAmortizationTable_InterestDecreasesOverTime(t *testing.T) {
	l := domain.NewLoan("LN1", 1, domain.LoanAuto, d(20000), 36, "USD")
	require.NotNil(t, l)

	table := l.AmortizationTable()
	assert.True(t, table[0].InterestPortion.GreaterThan(table[35].InterestPortion))
}

// =============================================================================
// PAYMENTS AND DELINQUENCY
// =============================================================================

func TestProcessPayment_ReducesPrincipalAndResetsMisses(t *testing.T) {
	l := domain.NewLoan("LN1", 1, domain.LoanPersonal, d(1000), 12, "USD")
	require.NotNil(t, l)
	l.RegisterMissedPayment()
	require.Equal(t, domain.LoanDelinquent, l.Status())

	when := domain.NewDate(2026, 4, 15)
	l.ProcessPayment(d(200), when)

	assert.True(t, l.Principal().Equal(d(800)))
	assert.Equal(t, 0, l.MissedPayments())
	assert.Equal(t, domain.LoanCurrent, l.Status())
	assert.True(t, l.LastPaymentDate().Equal(when))
}

func TestProcessPayment_Overpayment_ClampsToZeroAndPaysOff(t *testing.T) {
	l := domain.NewLoan("LN1", 1, domain.LoanPersonal, d(100), 12, "USD")
	require.NotNil(t, l)

	l.ProcessPayment(d(500), domain.Today())

	assert.True(t, l.Principal().IsZero())
	assert.Equal(t, domain.LoanPaidOff, l.Status())
}

func TestRegisterMissedPayment_EscalatesToDefaultAtThree(t *testing.T) {
	// GIVEN: A current loan
	// WHEN: Payments are missed three times in a row
	// THEN: Delinquent after 1 and 2, Defaulted at 3

	l := domain.NewLoan("LN1", 1, domain.LoanAuto, d(10000), 48, "USD")
	require.NotNil(t, l)

	l.RegisterMissedPayment()
	assert.Equal(t, domain.LoanDelinquent, l.Status())

	l.RegisterMissedPayment()
	assert.Equal(t, domain.LoanDelinquent, l.Status())

	l.RegisterMissedPayment()
	assert.Equal(t, domain.LoanDefaulted, l.Status())
	assert.Equal(t, 3, l.MissedPayments())
}

func TestRegisterMissedPayment_PaidOffLoan_NoOp(t *testing.T) {
	l := domain.NewLoan("LN1", 1, domain.LoanPersonal, d(100), 12, "USD")
	require.NotNil(t, l)
	l.ProcessPayment(d(100), domain.Today())

	l.RegisterMissedPayment()

	assert.Equal(t, domain.LoanPaidOff, l.Status())
	assert.Equal(t, 0, l.MissedPayments())
}

func TestLastPaymentDate_NoPayments_ZeroDate(t *testing.T) {
	l := domain.NewLoan("LN1", 1, domain.LoanPersonal, d(100), 12, "USD")
	require.NotNil(t, l)

	assert.True(t, l.LastPaymentDate().IsZero())
}

// =============================================================================
// FACTORY
// =============================================================================

func TestNewLoan_CatalogRates(t *testing.T) {
	personal := domain.NewLoan("LN1", 1, domain.LoanPersonal, d(1000), 12, "USD")
	mortgage := domain.NewLoan("LN2", 1, domain.LoanMortgage, d(1000), 12, "USD")
	auto := domain.NewLoan("LN3", 1, domain.LoanAuto, d(1000), 12, "USD")

	require.NotNil(t, personal)
	require.NotNil(t, mortgage)
	require.NotNil(t, auto)
	assert.True(t, personal.AnnualRate().Equal(domain.PersonalLoanAPR))
	assert.True(t, mortgage.AnnualRate().Equal(domain.MortgageAPR))
	assert.True(t, auto.AnnualRate().Equal(domain.AutoLoanAPR))
}

func TestNewLoan_InvalidInput_ReturnsNil(t *testing.T) {
	assert.Nil(t, domain.NewLoan("LN1", 1, "boat", d(1000), 12, "USD"))
	assert.Nil(t, domain.NewLoan("LN1", 1, domain.LoanAuto, d(-1), 12, "USD"))
	assert.Nil(t, domain.NewLoan("LN1", 1, domain.LoanAuto, d(1000), 0, "USD"))
}
