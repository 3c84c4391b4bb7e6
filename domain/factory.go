package domain

import "github.com/shopspring/decimal"

// DefaultCdTermMonths is the CD term used when the caller does not pick one.
const DefaultCdTermMonths = 12

// NewAccount builds an account of the requested variant with its interest
// strategy attached. Returns nil for an unknown type; the caller decides
// the messaging. The account number is assigned by the owning ledger.
func NewAccount(number string, customerID int, accountType AccountType, currency string, openDate Date) Account {
	switch accountType {
	case AccountSavings:
		return NewSavingsAccount(number, customerID, currency)
	case AccountChecking:
		return NewCheckingAccount(number, customerID, currency)
	case AccountCD:
		return NewCertificateOfDeposit(number, customerID, currency, DefaultCdTermMonths, openDate)
	default:
		return nil
	}
}

// NewLoan builds a loan of the requested variant with its catalog APR.
// Returns nil for an unknown type or a non-positive principal/term.
func NewLoan(id string, customerID int, loanType LoanType, principal decimal.Decimal, termMonths int, currency string) *Loan {
	if !principal.IsPositive() || termMonths <= 0 {
		return nil
	}
	var annualRate decimal.Decimal
	switch loanType {
	case LoanPersonal:
		annualRate = PersonalLoanAPR
	case LoanMortgage:
		annualRate = MortgageAPR
	case LoanAuto:
		annualRate = AutoLoanAPR
	default:
		return nil
	}
	return &Loan{
		id:         id,
		customerID: customerID,
		currency:   currency,
		loanType:   loanType,
		principal:  principal,
		termMonths: termMonths,
		annualRate: annualRate,
		status:     LoanCurrent,
	}
}

// NewLoanWithRate builds a loan with an explicit APR, used by tests and
// by zero-interest promotional loans.
func NewLoanWithRate(id string, customerID int, loanType LoanType, principal decimal.Decimal, termMonths int, annualRate decimal.Decimal, currency string) *Loan {
	l := NewLoan(id, customerID, loanType, principal, termMonths, currency)
	if l == nil {
		return nil
	}
	l.annualRate = annualRate
	return l
}
