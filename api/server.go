/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/customers/*    Customer management
  /api/accounts/*     Accounts and money movement
  /api/transfers      Account-to-account transfers
  /api/loans/*        Loans and amortization
  /api/schedules/*    Recurring payment schedules
  /api/scheduler/run  Manual scheduler pass
  /api/interest/run   Manual interest pass
  /api/reports/*      CSV exports and e-statements

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/bankd/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.ListCustomers)
			r.Post("/", h.CreateCustomer)
			r.Get("/{id}", h.GetCustomer)
			r.Get("/{id}/accounts", h.GetCustomerAccounts)
			r.Get("/{id}/loans", h.GetCustomerLoans)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", h.ListAccounts)
			r.Post("/", h.OpenAccount)
			r.Get("/{number}", h.GetAccount)
			r.Get("/{number}/transactions", h.GetTransactions)
			r.Post("/{number}/deposits", h.Deposit)
			r.Post("/{number}/withdrawals", h.Withdraw)
			r.Post("/{number}/freeze", h.Freeze)
			r.Post("/{number}/unfreeze", h.Unfreeze)
			r.Post("/{number}/status", h.SetStatus)
		})

		r.Post("/transfers", h.Transfer)

		r.Route("/loans", func(r chi.Router) {
			r.Get("/", h.ListLoans)
			r.Post("/", h.CreateLoan)
			r.Get("/{id}", h.GetLoan)
			r.Get("/{id}/amortization", h.GetAmortization)
			r.Post("/{id}/payments", h.PayLoan)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", h.ListSchedules)
			r.Post("/", h.CreateSchedule)
			r.Delete("/{id}", h.CancelSchedule)
		})

		r.Post("/scheduler/run", h.RunScheduler)
		r.Post("/interest/run", h.RunInterest)

		r.Route("/reports", func(r chi.Router) {
			r.Post("/customers", h.ExportCustomers)
			r.Post("/statements", h.ExportStatement)
			r.Post("/amortization/{id}", h.ExportAmortization)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
