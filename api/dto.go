/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY:
  Amounts travel as JSON strings ("1234.50"), never floats. Handlers
  parse them with decimal.NewFromString and reject anything that does
  not parse.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/jaazielocasio-source/sistema-de-banco/domain"
)

// =============================================================================
// CUSTOMERS
// =============================================================================

type CustomerDTO struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	GovernmentID string `json:"government_id"`
}

type CreateCustomerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	GovernmentID string `json:"government_id"`
}

func toCustomerDTO(c *domain.Customer) CustomerDTO {
	return CustomerDTO{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		GovernmentID: c.GovernmentID,
	}
}

// =============================================================================
// ACCOUNTS
// =============================================================================

type AccountDTO struct {
	Number     string `json:"number"`
	CustomerID int    `json:"customer_id"`
	Type       string `json:"type"`
	Currency   string `json:"currency"`
	Balance    string `json:"balance"`
	Status     string `json:"status"`
}

type OpenAccountRequest struct {
	CustomerID int    `json:"customer_id"`
	Type       string `json:"type"`
	Currency   string `json:"currency"`
}

type AmountRequest struct {
	Amount string `json:"amount"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type TransferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type TransactionDTO struct {
	ID           string `json:"id"`
	Timestamp    string `json:"timestamp"`
	Type         string `json:"type"`
	Amount       string `json:"amount"`
	Description  string `json:"description"`
	Counterparty string `json:"counterparty,omitempty"`
}

func toAccountDTO(a domain.Account) AccountDTO {
	return AccountDTO{
		Number:     a.Number(),
		CustomerID: a.CustomerID(),
		Type:       string(a.Type()),
		Currency:   a.Currency(),
		Balance:    a.Balance().StringFixed(2),
		Status:     string(a.Status()),
	}
}

func toTransactionDTO(tx domain.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:           tx.ID,
		Timestamp:    tx.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		Type:         string(tx.Type),
		Amount:       tx.Amount.StringFixed(2),
		Description:  tx.Description,
		Counterparty: tx.Counterparty,
	}
}

// =============================================================================
// LOANS
// =============================================================================

type LoanDTO struct {
	ID             string `json:"id"`
	CustomerID     int    `json:"customer_id"`
	Type           string `json:"type"`
	Currency       string `json:"currency"`
	Principal      string `json:"principal"`
	TermMonths     int    `json:"term_months"`
	AnnualRate     string `json:"annual_rate"`
	Installment    string `json:"installment"`
	Status         string `json:"status"`
	MissedPayments int    `json:"missed_payments"`
}

type CreateLoanRequest struct {
	CustomerID int    `json:"customer_id"`
	Type       string `json:"type"`
	Principal  string `json:"principal"`
	TermMonths int    `json:"term_months"`
	Currency   string `json:"currency"`
}

type AmortRowDTO struct {
	Month            int    `json:"month"`
	Payment          string `json:"payment"`
	InterestPortion  string `json:"interest_portion"`
	PrincipalPortion string `json:"principal_portion"`
	RemainingBalance string `json:"remaining_balance"`
}

func toLoanDTO(l *domain.Loan) LoanDTO {
	return LoanDTO{
		ID:             l.ID(),
		CustomerID:     l.CustomerID(),
		Type:           string(l.Type()),
		Currency:       l.Currency(),
		Principal:      l.Principal().StringFixed(2),
		TermMonths:     l.TermMonths(),
		AnnualRate:     l.AnnualRate().String(),
		Installment:    l.Installment().StringFixed(2),
		Status:         string(l.Status()),
		MissedPayments: l.MissedPayments(),
	}
}

// =============================================================================
// SCHEDULES
// =============================================================================

type ScheduleDTO struct {
	ID             string `json:"id"`
	SourceAccount  string `json:"source_account"`
	DestinationID  string `json:"destination_id"`
	Amount         string `json:"amount"`
	Periodicity    string `json:"periodicity"`
	NextDate       string `json:"next_date"`
	Name           string `json:"name"`
	Memo           string `json:"memo,omitempty"`
	Active         bool   `json:"active"`
	MaxRetries     int    `json:"max_retries"`
	RetriesDone    int    `json:"retries_done"`
	LastResult     string `json:"last_result"`
	LastAttempt    string `json:"last_attempt,omitempty"`
	EndDate        string `json:"end_date,omitempty"`
	DayOfMonth     int    `json:"day_of_month,omitempty"`
	RetryEveryDays int    `json:"retry_every_days"`
}

type CreateScheduleRequest struct {
	SourceAccount  string `json:"source_account"`
	DestinationID  string `json:"destination_id"`
	Amount         string `json:"amount"`
	Periodicity    string `json:"periodicity"`
	DayOfMonth     int    `json:"day_of_month,omitempty"`
	StartDate      string `json:"start_date,omitempty"`
	EndDate        string `json:"end_date,omitempty"`
	MaxRetries     int    `json:"max_retries,omitempty"`
	RetryEveryDays int    `json:"retry_every_days,omitempty"`
	Name           string `json:"name,omitempty"`
	Memo           string `json:"memo,omitempty"`
}

func toScheduleDTO(p *domain.PaymentSchedule) ScheduleDTO {
	dto := ScheduleDTO{
		ID:             p.ID,
		SourceAccount:  p.SourceAccount,
		DestinationID:  p.DestinationID,
		Amount:         p.Amount.StringFixed(2),
		Periodicity:    string(p.Periodicity),
		NextDate:       p.NextDate.String(),
		Name:           p.Name,
		Memo:           p.Memo,
		Active:         p.Active,
		MaxRetries:     p.MaxRetries,
		RetriesDone:    p.RetriesDone,
		LastResult:     p.LastResult,
		DayOfMonth:     p.DayOfMonth,
		RetryEveryDays: p.RetryEveryDays,
	}
	if p.LastAttempt != nil {
		dto.LastAttempt = p.LastAttempt.String()
	}
	if p.EndDate != nil {
		dto.EndDate = p.EndDate.String()
	}
	return dto
}

// =============================================================================
// BATCH OPERATIONS
// =============================================================================

type RunSchedulerRequest struct {
	AsOf string `json:"as_of,omitempty"` // YYYY-MM-DD, default today
}

type RunInterestRequest struct {
	Date    string `json:"date,omitempty"` // YYYY-MM-DD, default today
	Monthly bool   `json:"monthly"`
}

type StatementRequest struct {
	Account string `json:"account"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Email   bool   `json:"email,omitempty"`
}
