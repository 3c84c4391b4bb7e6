/*
Package domain contains the core banking entities.

PURPOSE:
  This package holds the account and loan state machines, the interest
  accrual strategies, and the recurring payment schedule records. All
  balance arithmetic uses decimal.Decimal so that money never drifts the
  way float64 does.

KEY CONCEPTS:
  - Account: a closed variant set {Savings, Checking, CertificateOfDeposit}
    sharing balance/transaction bookkeeping but each with its own
    withdrawal sufficiency rule.
  - Loan: Personal/Mortgage/Auto, differing only in APR, with an annuity
    amortization table and a delinquency state machine.
  - Transaction: an immutable, append-only audit entry. Never removed,
    never reordered.
  - PaymentSchedule: a recurring payment record advanced exclusively by
    the scheduler.

DESIGN PRINCIPLES:
  1. Balances mutate only through Deposit/Withdraw, except for interest
     and fees which use a package-private adjustment hook.
  2. Expected business failures are boolean results, never errors.
  3. Entities carry no global state; ids are assigned by their owner.

SEE ALSO:
  - account.go: the Account contract and shared bookkeeping
  - loan.go: amortization and delinquency
  - interest.go: per-variant accrual strategies
*/
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// CUSTOMER
// =============================================================================

// Customer holds the identity/contact fields the ledger needs. Anything
// richer (addresses, KYC documents) belongs to external record storage.
type Customer struct {
	ID           int
	Name         string
	Email        string
	Phone        string
	GovernmentID string
}

// =============================================================================
// TRANSACTION - Atomic balance change record
// =============================================================================

type TransactionType string

const (
	TxDeposit     TransactionType = "deposit"
	TxWithdrawal  TransactionType = "withdrawal"
	TxTransferOut TransactionType = "transfer_out"
	TxTransferIn  TransactionType = "transfer_in"
	TxFee         TransactionType = "fee"
	TxInterest    TransactionType = "interest"
)

// Transaction is an immutable ledger entry. Amount is always positive;
// the Type says which direction the money moved.
type Transaction struct {
	ID           string
	Timestamp    time.Time
	Type         TransactionType
	Amount       decimal.Decimal
	Description  string
	Counterparty string
}

func newTransaction(t TransactionType, amount decimal.Decimal, description, counterparty string) Transaction {
	return Transaction{
		ID:           uuid.NewString(),
		Timestamp:    time.Now(),
		Type:         t,
		Amount:       amount,
		Description:  description,
		Counterparty: counterparty,
	}
}

// =============================================================================
// STATUS ENUMS
// =============================================================================

type AccountStatus string

const (
	StatusActive AccountStatus = "active"
	StatusClosed AccountStatus = "closed"
	StatusFrozen AccountStatus = "frozen"
)

type LoanStatus string

const (
	LoanCurrent    LoanStatus = "current"
	LoanDelinquent LoanStatus = "delinquent"
	LoanDefaulted  LoanStatus = "defaulted"
	LoanPaidOff    LoanStatus = "paid_off"
)

type Periodicity string

const (
	PeriodDaily   Periodicity = "daily"
	PeriodMonthly Periodicity = "monthly"
)

// ParsePeriodicity maps free-text input to a Periodicity. Anything that is
// not "daily" (case-insensitive) is treated as monthly, matching the
// forgiving behavior callers expect from the simple scheduling form.
func ParsePeriodicity(s string) Periodicity {
	if strings.EqualFold(s, "daily") {
		return PeriodDaily
	}
	return PeriodMonthly
}
