/*
interest.go - Per-variant interest accrual strategies

Strategies mutate the balance through the package-private adjustBalance
hook: accrued interest and overdraft fees are bank-initiated, so they
bypass the Withdraw sufficiency gating entirely. Each application that
actually moves money appends an Interest or Fee transaction.

The batch driver (ledger.Service.ApplyInterestToAll) invokes these once
per simulated day or month boundary; the monthly flag selects the rate.
*/
package domain

// InterestStrategy is the accrual policy attached to an account at
// creation time.
type InterestStrategy interface {
	Apply(a Account, date Date, monthly bool)
}

// SavingsInterest credits balance × rate when the result is positive.
type SavingsInterest struct{}

func (SavingsInterest) Apply(a Account, date Date, monthly bool) {
	rate := SavingsDailyRate
	description := "Interés diario"
	if monthly {
		rate = SavingsMonthlyRate
		description = "Interés mensual"
	}
	interest := a.Balance().Mul(rate)
	if interest.IsPositive() {
		b := a.base()
		b.adjustBalance(interest)
		b.record(TxInterest, interest, description, "")
	}
}

// CheckingInterest charges an overdraft fee instead of paying interest:
// it only triggers while the balance is negative.
type CheckingInterest struct{}

func (CheckingInterest) Apply(a Account, date Date, monthly bool) {
	balance := a.Balance()
	if balance.Sign() >= 0 {
		return
	}
	rate := CheckingOverdraftDailyRate
	if monthly {
		rate = CheckingOverdraftMonthlyRate
	}
	fee := balance.Abs().Mul(rate)
	b := a.base()
	b.adjustBalance(fee.Neg())
	b.record(TxFee, fee, "Cargo sobregiro", "")
}

// CdInterest mirrors SavingsInterest with the CD rate table.
type CdInterest struct{}

func (CdInterest) Apply(a Account, date Date, monthly bool) {
	rate := CdDailyRate
	description := "Interés CD diario"
	if monthly {
		rate = CdMonthlyRate
		description = "Interés CD mensual"
	}
	interest := a.Balance().Mul(rate)
	if interest.IsPositive() {
		b := a.base()
		b.adjustBalance(interest)
		b.record(TxInterest, interest, description, "")
	}
}
