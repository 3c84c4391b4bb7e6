package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Schedule result texts surfaced to operators; the scheduler writes them
// verbatim into LastResult.
const (
	SchedulePending           = "Pending"
	ScheduleOK                = "OK"
	ScheduleFinished          = "Finalizado"
	ScheduleInsufficientFunds = "Fondos insuficientes"
	ScheduleDestMissing       = "Destino no encontrado"
)

// PaymentSchedule is a recurring payment record. The destination id is
// polymorphic: it may name an account number or a loan id, resolved by
// lookup at execution time (account first, then loan). Created by the
// ledger's scheduling operations and mutated exclusively by the
// scheduler's due-payment execution; deactivated, never deleted.
type PaymentSchedule struct {
	ID             string
	SourceAccount  string
	DestinationID  string
	Amount         decimal.Decimal
	Periodicity    Periodicity
	NextDate       Date
	Name           string
	Memo           string
	DayOfMonth     int // 0 = not configured
	StartDate      Date
	EndDate        *Date // nil = open-ended
	Active         bool
	MaxRetries     int
	RetryEveryDays int
	RetriesDone    int
	LastResult     string
	LastAttempt    *Date
}

// NewPaymentSchedule fills the defaults shared by both scheduling forms.
func NewPaymentSchedule(sourceAccount, destID string, amount decimal.Decimal, periodicity Periodicity) *PaymentSchedule {
	return &PaymentSchedule{
		ID:             uuid.NewString(),
		SourceAccount:  sourceAccount,
		DestinationID:  destID,
		Amount:         amount,
		Periodicity:    periodicity,
		Name:           "AutoPay",
		Active:         true,
		RetryEveryDays: 1,
		LastResult:     SchedulePending,
	}
}
