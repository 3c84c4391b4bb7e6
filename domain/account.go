/*
account.go - The Account contract and shared bookkeeping

PURPOSE:
  Defines the Account interface implemented by the closed variant set
  {SavingsAccount, CheckingAccount, CertificateOfDeposit} and the shared
  balance/transaction machinery they embed.

CRITICAL INVARIANTS:
  1. Balance changes only through Deposit/Withdraw, or through the
     package-private adjustBalance hook used by interest strategies.
  2. Every successful movement appends exactly one Transaction (the CD
     early-withdrawal penalty adds a second, a Fee).
  3. Transactions are append-only: never removed, never reordered.
  4. Deposit and Withdraw succeed only while Status is Active.

WHY AN UNEXPORTED base() METHOD?
  It closes the variant set (no package can implement Account from the
  outside) and gives interest strategies their balance-adjustment hook
  without exporting a method that would let callers bypass the
  sufficiency rules.

SEE ALSO:
  - variants.go: the three concrete account types
  - interest.go: strategies that use the adjustment hook
*/
package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountSavings  AccountType = "savings"
	AccountChecking AccountType = "checking"
	AccountCD       AccountType = "cd"
)

// Account is the capability set shared by all account variants.
//
// Deposit and Withdraw return false for every expected business failure
// (inactive account, non-positive amount, sufficiency rule violated);
// they never panic for those.
type Account interface {
	Number() string
	CustomerID() int
	Currency() string
	Type() AccountType
	Status() AccountStatus
	SetStatus(status AccountStatus)
	Balance() decimal.Decimal
	Transactions() []Transaction

	Deposit(amount decimal.Decimal) bool
	Withdraw(amount decimal.Decimal) bool

	// ApplyInterest delegates to the attached strategy, if any. The caller
	// decides whether the event is a monthly or a daily accrual; the
	// account does not infer periodicity from the date.
	ApplyInterest(date Date, monthly bool)

	// ProcessPayment lets an account act as a payment destination's debit
	// side; it is a plain Withdraw.
	ProcessPayment(amount decimal.Decimal, date Date) bool

	// ReportRow returns the CSV row used by report exports.
	ReportRow() []string

	base() *accountBase
}

// =============================================================================
// SHARED BOOKKEEPING
// =============================================================================

type accountBase struct {
	number       string
	customerID   int
	currency     string
	status       AccountStatus
	balance      decimal.Decimal
	transactions []Transaction
	strategy     InterestStrategy
}

func newAccountBase(number string, customerID int, currency string, strategy InterestStrategy) accountBase {
	return accountBase{
		number:     number,
		customerID: customerID,
		currency:   currency,
		status:     StatusActive,
		balance:    decimal.Zero,
		strategy:   strategy,
	}
}

func (b *accountBase) base() *accountBase        { return b }
func (b *accountBase) Number() string            { return b.number }
func (b *accountBase) CustomerID() int           { return b.customerID }
func (b *accountBase) Currency() string          { return b.currency }
func (b *accountBase) Status() AccountStatus     { return b.status }
func (b *accountBase) SetStatus(s AccountStatus) { b.status = s }
func (b *accountBase) Balance() decimal.Decimal  { return b.balance }

// Transactions returns a copy; the internal list stays append-only.
func (b *accountBase) Transactions() []Transaction {
	out := make([]Transaction, len(b.transactions))
	copy(out, b.transactions)
	return out
}

func (b *accountBase) ReportRow() []string {
	return []string{
		b.number,
		fmt.Sprintf("%d", b.customerID),
		b.currency,
		b.balance.StringFixed(2),
		string(b.status),
	}
}

// deposit is the shared Deposit implementation. Variants expose it as-is.
func (b *accountBase) deposit(amount decimal.Decimal) bool {
	if b.status != StatusActive || !amount.IsPositive() {
		return false
	}
	b.balance = b.balance.Add(amount)
	b.record(TxDeposit, amount, "Depósito", "")
	return true
}

// withdrawWith runs the shared Withdraw flow against a variant-specific
// sufficiency predicate.
func (b *accountBase) withdrawWith(sufficient func(amount decimal.Decimal) bool, amount decimal.Decimal) bool {
	if b.status != StatusActive || !amount.IsPositive() {
		return false
	}
	if !sufficient(amount) {
		return false
	}
	b.balance = b.balance.Sub(amount)
	b.record(TxWithdrawal, amount, "Retiro", "")
	return true
}

// adjustBalance mutates the balance without any sufficiency check. Only
// interest strategies may use it: interest and fees are not
// customer-initiated movements and skip Withdraw's gating.
func (b *accountBase) adjustBalance(delta decimal.Decimal) {
	b.balance = b.balance.Add(delta)
}

func (b *accountBase) record(t TransactionType, amount decimal.Decimal, description, counterparty string) {
	b.transactions = append(b.transactions, newTransaction(t, amount, description, counterparty))
}

// applyStrategy runs the attached strategy against the full account value
// (the strategy needs the variant, not just the base).
func (b *accountBase) applyStrategy(a Account, date Date, monthly bool) {
	if b.strategy != nil {
		b.strategy.Apply(a, date, monthly)
	}
}
