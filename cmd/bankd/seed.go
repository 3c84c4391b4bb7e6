package main

import (
	"github.com/shopspring/decimal"

	"github.com/jaazielocasio-source/sistema-de-banco/domain"
	"github.com/jaazielocasio-source/sistema-de-banco/ledger"
)

// seedSampleData loads a small demo universe so the API has something
// to show on a fresh start.
func seedSampleData(bank *ledger.Service) {
	ana := bank.CreateCustomer("Ana García", "ana@example.com", "555-0101", "GOB-1122334455")
	luis := bank.CreateCustomer("Luis Fernández", "luis@example.com", "555-0102", "GOB-9988776655")

	savings := bank.OpenAccount(ana.ID, domain.AccountSavings, "USD")
	checking := bank.OpenAccount(ana.ID, domain.AccountChecking, "USD")
	bank.OpenAccount(luis.ID, domain.AccountCD, "USD")
	eur := bank.OpenAccount(luis.ID, domain.AccountChecking, "EUR")

	bank.Deposit(savings.Number(), decimal.NewFromInt(2500))
	bank.Deposit(checking.Number(), decimal.NewFromInt(800))
	bank.Deposit(eur.Number(), decimal.NewFromInt(1200))

	loan := bank.CreateLoan(ana.ID, domain.LoanAuto, decimal.NewFromInt(15000), 48, "USD")

	// Monthly autopay from checking toward the loan, due the 15th.
	if loan != nil {
		bank.SchedulePaymentWithOptions(checking.Number(), loan.ID(), loan.Installment(), ledger.ScheduleOptions{
			Periodicity:    domain.PeriodMonthly,
			DayOfMonth:     15,
			StartDate:      domain.Today(),
			MaxRetries:     3,
			RetryEveryDays: 2,
			Name:           "AutoPay préstamo auto",
		})
	}
}
