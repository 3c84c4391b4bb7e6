package report

import (
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"time"

	"github.com/jordan-wright/email"
)

// SMTPConfig carries delivery settings for e-statements. An empty Host
// means "compose only": the message is written to disk as .eml instead
// of being sent.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// BuildEStatement composes the monthly e-statement message for an
// account, attaching the given statement file. The recipient is the
// owning customer's email, falling back to a placeholder when the
// customer record is missing.
func (s *Service) BuildEStatement(accountNumber string, year int, month time.Month, attachmentPath string) (*email.Email, error) {
	acc := s.bank.AccountByNumber(accountNumber)
	if acc == nil {
		return nil, ErrAccountNotFound
	}

	to := "cliente@example.com"
	if c := s.bank.CustomerByID(acc.CustomerID()); c != nil && c.Email != "" {
		to = c.Email
	}

	e := email.NewEmail()
	e.To = []string{to}
	e.Subject = fmt.Sprintf("E-Statement %s %d-%02d", accountNumber, year, int(month))
	e.Text = []byte(fmt.Sprintf(
		"Estimado cliente,\n\nAdjunto su estado de cuenta %s del período %d-%02d.\n\nSaldo actual: %s %s\n",
		accountNumber, year, int(month), acc.Balance().StringFixed(2), acc.Currency(),
	))
	if attachmentPath != "" {
		if _, err := e.AttachFile(attachmentPath); err != nil {
			return nil, fmt.Errorf("failed to attach statement: %w", err)
		}
	}
	return e, nil
}

// WriteEML renders the message to an .eml file and returns its path.
func (s *Service) WriteEML(e *email.Email, accountNumber string, year int, month time.Month) (string, error) {
	raw, err := e.Bytes()
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, fmt.Sprintf("EStatement_%s_%d-%02d.eml", accountNumber, year, int(month)))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", err
	}
	s.aud.Log("REPORT.ESTATEMENT", fmt.Sprintf("E-Statement %s %d-%02d -> %s", accountNumber, year, int(month), path), accountNumber)
	return path, nil
}

// SendEStatement delivers the message over SMTP.
func (s *Service) SendEStatement(e *email.Email, cfg SMTPConfig) error {
	e.From = cfg.From
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send e-statement: %w", err)
	}
	s.aud.Log("REPORT.ESTATEMENT.SENT", fmt.Sprintf("E-Statement enviado a %v", e.To))
	return nil
}
