/*
Package scheduler drives due-payment passes against the ledger.

STATE MACHINE (per schedule, per ExecuteDuePayments call):
  Pending -> due-date reached -> {Executed, Skipped-InsufficientFunds,
  Skipped-DestinationMissing} -> next due date computed -> Pending,
  with a terminal Inactive state once the end date has passed or an
  operator cancels the schedule.

DUE DATES:
  Due dates are kept business-day adjusted: a date landing on a weekend
  or a bank holiday shifts forward to the next business day, and the
  shift is persisted on the schedule.

FAILURE POLICY:
  A failed withdrawal increments the retry counter. While retries
  remain, the next attempt is scheduled retryEveryDays after the as-of
  date (again business-day adjusted). Once retries are exhausted and the
  destination is a loan, a missed payment is registered against it and
  no further automatic retry happens.

CONCURRENCY:
  The pass itself runs inside the ledger, under the ledger's write lock,
  so a cron-driven run cannot interleave with API callers mutating the
  same accounts. The scheduler contributes the holiday calendar and a
  pass-level audit summary.

KNOWN GAP (preserved from the reference behavior):
  When the source withdrawal succeeds but the destination resolves to
  neither an account nor a loan, the funds have already left the source
  and are not restored; the schedule records "Destino no encontrado" and
  keeps its due date so the next run surfaces the problem again.
*/
package scheduler

import (
	"fmt"

	"github.com/jaazielocasio-source/sistema-de-banco/audit"
	"github.com/jaazielocasio-source/sistema-de-banco/domain"
	"github.com/jaazielocasio-source/sistema-de-banco/ledger"
)

// Scheduler runs due-payment passes. It holds no schedule state of its
// own; everything lives on the ledger's PaymentSchedule records.
type Scheduler struct {
	aud      audit.Logger
	calendar domain.HolidayCalendar
}

func New(aud audit.Logger) *Scheduler {
	if aud == nil {
		aud = audit.Nop{}
	}
	return &Scheduler{aud: aud, calendar: domain.FixedHolidays{}}
}

// SetCalendar replaces the holiday calendar used for business-day
// adjustment.
func (s *Scheduler) SetCalendar(cal domain.HolidayCalendar) {
	s.calendar = cal
}

// ExecuteDuePayments attempts every active, due schedule exactly once
// and returns how many executed successfully (skips and retries do not
// count). The pass runs entirely inside the ledger under its write
// lock; see the package comment.
func (s *Scheduler) ExecuteDuePayments(bank *ledger.Service, asOf domain.Date) int {
	count := bank.ExecuteDuePayments(asOf, s.calendar)
	s.aud.Log("SCHEDULE.PASS", fmt.Sprintf("Corrida %s: %d pagos ejecutados", asOf, count))
	return count
}
