/*
Package report generates CSV exports and e-statements.

This is thin collaborator glue: it only reads the ledger's collections
and entity report rows; it never mutates banking state. File formats
here belong to this package, not to the core.
*/
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jaazielocasio-source/sistema-de-banco/audit"
	"github.com/jaazielocasio-source/sistema-de-banco/ledger"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrLoanNotFound    = errors.New("loan not found")
)

// Service writes reports under a fixed output directory.
type Service struct {
	bank *ledger.Service
	aud  audit.Logger
	dir  string
}

func NewService(bank *ledger.Service, aud audit.Logger, dir string) *Service {
	if aud == nil {
		aud = audit.Nop{}
	}
	return &Service{bank: bank, aud: aud, dir: dir}
}

// ExportCustomersCSV writes every customer record and returns the file
// path. Government ids are exported as stored; masking is a display
// concern, not an export concern.
func (s *Service) ExportCustomersCSV() (string, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("Clientes_%s.csv", time.Now().Format("20060102_150405")))
	f, err := s.create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Id", "Nombre", "Email", "Telefono", "GobId"}); err != nil {
		return "", err
	}
	for _, c := range s.bank.Customers() {
		row := []string{fmt.Sprintf("%d", c.ID), c.Name, c.Email, c.Phone, c.GovernmentID}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	s.aud.Log("REPORT.CUSTOMERS", fmt.Sprintf("Export clientes -> %s", path))
	return path, nil
}

// ExportMonthlyStatementCSV writes one account's transactions for a
// given month.
func (s *Service) ExportMonthlyStatementCSV(accountNumber string, year int, month time.Month) (string, error) {
	acc := s.bank.AccountByNumber(accountNumber)
	if acc == nil {
		return "", ErrAccountNotFound
	}

	path := filepath.Join(s.dir, fmt.Sprintf("Extracto_%s_%d-%02d.csv", accountNumber, year, int(month)))
	f, err := s.create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Date", "Type", "Amount", "Description", "Counterparty"}); err != nil {
		return "", err
	}
	for _, tx := range acc.Transactions() {
		if tx.Timestamp.Year() != year || tx.Timestamp.Month() != month {
			continue
		}
		row := []string{
			tx.Timestamp.Format("2006-01-02 15:04"),
			string(tx.Type),
			tx.Amount.StringFixed(2),
			tx.Description,
			tx.Counterparty,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	s.aud.Log("REPORT.CSV", fmt.Sprintf("CSV extracto %s %d-%02d", accountNumber, year, int(month)), accountNumber)
	return path, nil
}

// ExportAmortizationCSV writes a loan's full amortization table.
func (s *Service) ExportAmortizationCSV(loanID string) (string, error) {
	loan := s.bank.LoanByID(loanID)
	if loan == nil {
		return "", ErrLoanNotFound
	}

	path := filepath.Join(s.dir, fmt.Sprintf("Amortizacion_%s.csv", loanID))
	f, err := s.create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Month", "Payment", "Interest", "Principal", "RemainingBalance"}); err != nil {
		return "", err
	}
	for i, row := range loan.AmortizationTable() {
		record := []string{
			fmt.Sprintf("%d", i+1),
			row.Payment.StringFixed(2),
			row.InterestPortion.StringFixed(2),
			row.PrincipalPortion.StringFixed(2),
			row.RemainingBalance.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	s.aud.Log("REPORT.AMORT", fmt.Sprintf("Tabla de amortización %s", loanID))
	return path, nil
}

func (s *Service) create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}
