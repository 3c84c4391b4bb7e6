/*
handlers.go - HTTP handlers for the banking API

PURPOSE:
  Implements the HTTP handlers over the ledger service, the payment
  scheduler, and the report service. Handlers parse and validate input,
  delegate to the collaborators, and translate outcomes to JSON.

ERROR MODEL:
  The ledger reports expected domain failures (missing account, limit
  exceeded, insufficient funds, wrong status) as boolean false / nil.
  Handlers map those to 4xx responses with a human-readable message;
  they cannot distinguish the individual causes and do not pretend to.

SEE ALSO:
  - dto.go: Request/response types
  - server.go: Route wiring
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/jaazielocasio-source/sistema-de-banco/domain"
	"github.com/jaazielocasio-source/sistema-de-banco/ledger"
	"github.com/jaazielocasio-source/sistema-de-banco/report"
	"github.com/jaazielocasio-source/sistema-de-banco/scheduler"
)

// Handler holds the collaborators shared by all endpoints.
type Handler struct {
	Bank    *ledger.Service
	Sched   *scheduler.Scheduler
	Reports *report.Service
	SMTP    report.SMTPConfig
}

func NewHandler(bank *ledger.Service, sched *scheduler.Scheduler, reports *report.Service) *Handler {
	return &Handler{Bank: bank, Sched: sched, Reports: reports}
}

// =============================================================================
// CUSTOMERS
// =============================================================================

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers := h.Bank.Customers()
	dtos := make([]CustomerDTO, 0, len(customers))
	for _, c := range customers {
		dtos = append(dtos, toCustomerDTO(c))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}
	c := h.Bank.CreateCustomer(req.Name, req.Email, req.Phone, req.GovernmentID)
	writeJSON(w, http.StatusCreated, toCustomerDTO(c))
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	c := h.Bank.CustomerByID(id)
	if c == nil {
		writeError(w, http.StatusNotFound, "customer not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerDTO(c))
}

func (h *Handler) GetCustomerAccounts(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	accounts := h.Bank.AccountsByCustomer(id)
	dtos := make([]AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		dtos = append(dtos, toAccountDTO(a))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetCustomerLoans(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	loans := h.Bank.LoansByCustomer(id)
	dtos := make([]LoanDTO, 0, len(loans))
	for _, l := range loans {
		dtos = append(dtos, toLoanDTO(l))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// ACCOUNTS
// =============================================================================

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := h.Bank.Accounts()
	dtos := make([]AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		dtos = append(dtos, toAccountDTO(a))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	var req OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if h.Bank.CustomerByID(req.CustomerID) == nil {
		writeError(w, http.StatusNotFound, "customer not found", nil)
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	a := h.Bank.OpenAccount(req.CustomerID, domain.AccountType(req.Type), currency)
	if a == nil {
		writeError(w, http.StatusBadRequest, "unknown account type", nil)
		return
	}
	writeJSON(w, http.StatusCreated, toAccountDTO(a))
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	a := h.Bank.AccountByNumber(chi.URLParam(r, "number"))
	if a == nil {
		writeError(w, http.StatusNotFound, "account not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toAccountDTO(a))
}

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	a := h.Bank.AccountByNumber(chi.URLParam(r, "number"))
	if a == nil {
		writeError(w, http.StatusNotFound, "account not found", nil)
		return
	}
	txs := a.Transactions()
	dtos := make([]TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		dtos = append(dtos, toTransactionDTO(tx))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	amount, ok := amountFromBody(w, r)
	if !ok {
		return
	}
	if h.Bank.AccountByNumber(number) == nil {
		writeError(w, http.StatusNotFound, "account not found", nil)
		return
	}
	if !h.Bank.Deposit(number, amount) {
		writeError(w, http.StatusUnprocessableEntity, "deposit rejected", nil)
		return
	}
	writeJSON(w, http.StatusOK, toAccountDTO(h.Bank.AccountByNumber(number)))
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	amount, ok := amountFromBody(w, r)
	if !ok {
		return
	}
	if h.Bank.AccountByNumber(number) == nil {
		writeError(w, http.StatusNotFound, "account not found", nil)
		return
	}
	if !h.Bank.Withdraw(number, amount) {
		writeError(w, http.StatusUnprocessableEntity, "withdrawal rejected", nil)
		return
	}
	writeJSON(w, http.StatusOK, toAccountDTO(h.Bank.AccountByNumber(number)))
}

func (h *Handler) Freeze(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.StatusFrozen)
}

func (h *Handler) Unfreeze(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.StatusActive)
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	switch domain.AccountStatus(req.Status) {
	case domain.StatusActive, domain.StatusFrozen, domain.StatusClosed:
	default:
		writeError(w, http.StatusBadRequest, "unknown status", nil)
		return
	}
	h.setStatus(w, r, domain.AccountStatus(req.Status))
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, status domain.AccountStatus) {
	number := chi.URLParam(r, "number")
	if !h.Bank.SetAccountStatus(number, status) {
		writeError(w, http.StatusNotFound, "account not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toAccountDTO(h.Bank.AccountByNumber(number)))
}

// =============================================================================
// TRANSFERS
// =============================================================================

func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err)
		return
	}
	if !h.Bank.Transfer(req.From, req.To, amount) {
		writeError(w, http.StatusUnprocessableEntity, "transfer rejected", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"from":   req.From,
		"to":     req.To,
		"amount": amount.StringFixed(2),
		"status": "ok",
	})
}

// =============================================================================
// LOANS
// =============================================================================

func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans := h.Bank.Loans()
	dtos := make([]LoanDTO, 0, len(loans))
	for _, l := range loans {
		dtos = append(dtos, toLoanDTO(l))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	principal, err := decimal.NewFromString(req.Principal)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid principal", err)
		return
	}
	if h.Bank.CustomerByID(req.CustomerID) == nil {
		writeError(w, http.StatusNotFound, "customer not found", nil)
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	l := h.Bank.CreateLoan(req.CustomerID, domain.LoanType(req.Type), principal, req.TermMonths, currency)
	if l == nil {
		writeError(w, http.StatusBadRequest, "invalid loan type or terms", nil)
		return
	}
	writeJSON(w, http.StatusCreated, toLoanDTO(l))
}

func (h *Handler) GetLoan(w http.ResponseWriter, r *http.Request) {
	l := h.Bank.LoanByID(chi.URLParam(r, "id"))
	if l == nil {
		writeError(w, http.StatusNotFound, "loan not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toLoanDTO(l))
}

func (h *Handler) GetAmortization(w http.ResponseWriter, r *http.Request) {
	l := h.Bank.LoanByID(chi.URLParam(r, "id"))
	if l == nil {
		writeError(w, http.StatusNotFound, "loan not found", nil)
		return
	}
	table := l.AmortizationTable()
	dtos := make([]AmortRowDTO, 0, len(table))
	for i, row := range table {
		dtos = append(dtos, AmortRowDTO{
			Month:            i + 1,
			Payment:          row.Payment.StringFixed(2),
			InterestPortion:  row.InterestPortion.StringFixed(2),
			PrincipalPortion: row.PrincipalPortion.StringFixed(2),
			RemainingBalance: row.RemainingBalance.StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) PayLoan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l := h.Bank.LoanByID(id)
	if l == nil {
		writeError(w, http.StatusNotFound, "loan not found", nil)
		return
	}
	amount, ok := amountFromBody(w, r)
	if !ok {
		return
	}
	if !h.Bank.PayLoan(id, amount) {
		writeError(w, http.StatusUnprocessableEntity, "payment rejected", nil)
		return
	}
	writeJSON(w, http.StatusOK, toLoanDTO(l))
}

// =============================================================================
// SCHEDULES
// =============================================================================

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules := h.Bank.Schedules()
	dtos := make([]ScheduleDTO, 0, len(schedules))
	for _, p := range schedules {
		dtos = append(dtos, toScheduleDTO(p))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err)
		return
	}

	opts := ledger.ScheduleOptions{
		Periodicity:    domain.ParsePeriodicity(req.Periodicity),
		DayOfMonth:     req.DayOfMonth,
		StartDate:      domain.Today(),
		MaxRetries:     req.MaxRetries,
		RetryEveryDays: req.RetryEveryDays,
		Name:           req.Name,
		Memo:           req.Memo,
	}
	if req.StartDate != "" {
		d, ok := dateFromString(w, req.StartDate, "start_date")
		if !ok {
			return
		}
		opts.StartDate = d
	}
	if req.EndDate != "" {
		d, ok := dateFromString(w, req.EndDate, "end_date")
		if !ok {
			return
		}
		opts.EndDate = &d
	}

	if !h.Bank.SchedulePaymentWithOptions(req.SourceAccount, req.DestinationID, amount, opts) {
		writeError(w, http.StatusUnprocessableEntity, "schedule rejected", nil)
		return
	}

	schedules := h.Bank.Schedules()
	writeJSON(w, http.StatusCreated, toScheduleDTO(schedules[len(schedules)-1]))
}

func (h *Handler) CancelSchedule(w http.ResponseWriter, r *http.Request) {
	if !h.Bank.CancelSchedule(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "schedule not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// =============================================================================
// BATCH OPERATIONS
// =============================================================================

func (h *Handler) RunScheduler(w http.ResponseWriter, r *http.Request) {
	var req RunSchedulerRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}
	}
	asOf := domain.Today()
	if req.AsOf != "" {
		d, ok := dateFromString(w, req.AsOf, "as_of")
		if !ok {
			return
		}
		asOf = d
	}
	executed := h.Sched.ExecuteDuePayments(h.Bank, asOf)
	writeJSON(w, http.StatusOK, map[string]any{"as_of": asOf.String(), "executed": executed})
}

func (h *Handler) RunInterest(w http.ResponseWriter, r *http.Request) {
	var req RunInterestRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}
	}
	date := domain.Today()
	if req.Date != "" {
		d, ok := dateFromString(w, req.Date, "date")
		if !ok {
			return
		}
		date = d
	}
	h.Bank.ApplyInterestToAll(date, req.Monthly)
	writeJSON(w, http.StatusOK, map[string]any{"date": date.String(), "monthly": req.Monthly})
}

// =============================================================================
// REPORTS
// =============================================================================

func (h *Handler) ExportCustomers(w http.ResponseWriter, r *http.Request) {
	path, err := h.Reports.ExportCustomersCSV()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

func (h *Handler) ExportStatement(w http.ResponseWriter, r *http.Request) {
	var req StatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Month < 1 || req.Month > 12 {
		writeError(w, http.StatusBadRequest, "month must be 1-12", nil)
		return
	}
	month := time.Month(req.Month)

	path, err := h.Reports.ExportMonthlyStatementCSV(req.Account, req.Year, month)
	if err != nil {
		status := http.StatusInternalServerError
		if err == report.ErrAccountNotFound {
			status = http.StatusNotFound
		}
		writeError(w, status, "export failed", err)
		return
	}

	resp := map[string]string{"path": path}
	if req.Email {
		msg, err := h.Reports.BuildEStatement(req.Account, req.Year, month, path)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "e-statement failed", err)
			return
		}
		if h.SMTP.Host != "" {
			if err := h.Reports.SendEStatement(msg, h.SMTP); err != nil {
				writeError(w, http.StatusBadGateway, "e-statement delivery failed", err)
				return
			}
			resp["email"] = "sent"
		} else {
			eml, err := h.Reports.WriteEML(msg, req.Account, req.Year, month)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "e-statement failed", err)
				return
			}
			resp["eml"] = eml
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ExportAmortization(w http.ResponseWriter, r *http.Request) {
	path, err := h.Reports.ExportAmortizationCSV(chi.URLParam(r, "id"))
	if err != nil {
		status := http.StatusInternalServerError
		if err == report.ErrLoanNotFound {
			status = http.StatusNotFound
		}
		writeError(w, status, "export failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := map[string]string{"error": message}
	if err != nil {
		resp["detail"] = err.Error()
	}
	writeJSON(w, status, resp)
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name, err)
		return 0, false
	}
	return id, true
}

func amountFromBody(w http.ResponseWriter, r *http.Request) (decimal.Decimal, bool) {
	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err)
		return decimal.Zero, false
	}
	return amount, true
}

func dateFromString(w http.ResponseWriter, s, field string) (domain.Date, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+field+" (want YYYY-MM-DD)", err)
		return domain.Date{}, false
	}
	return domain.DateOf(t), true
}
