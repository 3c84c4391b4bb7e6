/*
loan.go - Loans, annuity amortization, delinquency state machine

INVARIANTS:
  1. Principal never goes negative: payments clamp at zero.
  2. Status changes only via ProcessPayment (resets the missed counter,
     PaidOff at exactly zero principal) or RegisterMissedPayment
     (3+ consecutive misses = Defaulted, fewer = Delinquent).
  3. RegisterMissedPayment is a no-op once the loan is PaidOff.

AMORTIZATION:
  Fixed installment from the standard annuity formula
  P·r·(1+r)^n / ((1+r)^n − 1), or P/n at zero rate. The table rounds each
  interest portion to the cent and lets the final row absorb the residual
  so the remaining balance lands on exactly zero.
*/
package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type LoanType string

const (
	LoanPersonal LoanType = "personal"
	LoanMortgage LoanType = "mortgage"
	LoanAuto     LoanType = "auto"
)

// Loan variants differ only in their APR, so a single struct with a type
// tag replaces a class hierarchy; the rate is fixed by the factory.
type Loan struct {
	id             string
	customerID     int
	currency       string
	loanType       LoanType
	principal      decimal.Decimal
	termMonths     int
	annualRate     decimal.Decimal
	status         LoanStatus
	missedPayments int
	lastPayment    *Date
}

func (l *Loan) ID() string                  { return l.id }
func (l *Loan) CustomerID() int             { return l.customerID }
func (l *Loan) Currency() string            { return l.currency }
func (l *Loan) Type() LoanType              { return l.loanType }
func (l *Loan) Principal() decimal.Decimal  { return l.principal }
func (l *Loan) TermMonths() int             { return l.termMonths }
func (l *Loan) AnnualRate() decimal.Decimal { return l.annualRate }
func (l *Loan) Status() LoanStatus          { return l.status }
func (l *Loan) MissedPayments() int         { return l.missedPayments }

// LastPaymentDate returns the most recent payment date, or a zero Date if
// no payment was ever processed.
func (l *Loan) LastPaymentDate() Date {
	if l.lastPayment == nil {
		return Date{}
	}
	return *l.lastPayment
}

// Installment computes the fixed monthly payment.
func (l *Loan) Installment() decimal.Decimal {
	n := decimal.NewFromInt(int64(l.termMonths))
	monthlyRate := l.annualRate.Div(decimal.NewFromInt(12))
	if monthlyRate.IsZero() {
		return l.principal.Div(n).Round(2)
	}
	one := decimal.NewFromInt(1)
	factor := one.Add(monthlyRate).Pow(n)
	return l.principal.Mul(monthlyRate).Mul(factor).Div(factor.Sub(one)).Round(2)
}

// AmortRow is one month of the amortization table.
type AmortRow struct {
	Payment          decimal.Decimal
	InterestPortion  decimal.Decimal
	PrincipalPortion decimal.Decimal
	RemainingBalance decimal.Decimal
}

// AmortizationTable generates the full schedule on demand, one row per
// month of the term. The final row absorbs any rounding residual so the
// principal portions sum to the original principal to the cent.
func (l *Loan) AmortizationTable() []AmortRow {
	rows := make([]AmortRow, 0, l.termMonths)
	monthlyRate := l.annualRate.Div(decimal.NewFromInt(12))
	balance := l.principal
	payment := l.Installment()

	for i := 0; i < l.termMonths; i++ {
		interest := balance.Mul(monthlyRate).Round(2)
		principalPortion := payment.Sub(interest)
		balance = balance.Sub(principalPortion)
		if i == l.termMonths-1 && !balance.IsZero() {
			payment = payment.Add(balance)
			principalPortion = principalPortion.Add(balance)
			balance = decimal.Zero
		}
		rows = append(rows, AmortRow{
			Payment:          payment,
			InterestPortion:  interest,
			PrincipalPortion: principalPortion,
			RemainingBalance: balance,
		})
	}
	return rows
}

// ProcessPayment reduces the principal by min(amount, principal), stamps
// the payment date, resets the missed counter, and recomputes status. It
// always succeeds: overpayments simply pay the loan off.
func (l *Loan) ProcessPayment(amount decimal.Decimal, date Date) bool {
	l.principal = decimal.Max(decimal.Zero, l.principal.Sub(amount))
	d := date
	l.lastPayment = &d
	l.missedPayments = 0
	if l.principal.IsZero() {
		l.status = LoanPaidOff
	} else {
		l.status = LoanCurrent
	}
	return true
}

// RegisterMissedPayment escalates delinquency. Three or more consecutive
// misses default the loan.
func (l *Loan) RegisterMissedPayment() {
	if l.status == LoanPaidOff {
		return
	}
	l.missedPayments++
	if l.missedPayments >= 3 {
		l.status = LoanDefaulted
	} else {
		l.status = LoanDelinquent
	}
}

func (l *Loan) ReportRow() []string {
	return []string{
		l.id,
		fmt.Sprintf("%d", l.customerID),
		l.currency,
		l.principal.StringFixed(2),
		l.annualRate.String(),
		fmt.Sprintf("%d", l.termMonths),
	}
}
