package domain

import "github.com/shopspring/decimal"

// Rate catalog. Rates are fixed constants of the simulation; a real bank
// would price these per product and per customer.
var (
	SavingsDailyRate   = rate("0.01").Div(decimal.NewFromInt(365))
	SavingsMonthlyRate = rate("0.01").Div(decimal.NewFromInt(12))

	CdDailyRate   = rate("0.03").Div(decimal.NewFromInt(365))
	CdMonthlyRate = rate("0.03").Div(decimal.NewFromInt(12))

	CheckingOverdraftDailyRate   = rate("0.18").Div(decimal.NewFromInt(365))
	CheckingOverdraftMonthlyRate = rate("0.18").Div(decimal.NewFromInt(12))

	PersonalLoanAPR = rate("0.12")
	MortgageAPR     = rate("0.065")
	AutoLoanAPR     = rate("0.08")
)

// Fee schedule.
var (
	CdEarlyWithdrawalPenaltyRate = rate("0.02")
	DefaultOverdraftLimit        = decimal.NewFromInt(200)
	MaintenanceFee               = decimal.NewFromInt(5)
	TransferFee                  = rate("0.5")
)

// SavingsMonthlyWithdrawalLimit caps withdrawals per calendar month on
// savings accounts. The counter resets when monthly interest runs on the
// first of a month.
const SavingsMonthlyWithdrawalLimit = 6

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
