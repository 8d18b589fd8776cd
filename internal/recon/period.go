package recon

import (
	"fmt"
	"strings"
	"time"
)

// Semi-monthly cycles switch halves on this day of month.
const cycleSplitDay = 16

// MonthWindow builds the reporting window for a calendar month: the first
// through the last instant of the month, labelled "January 2006".
func MonthWindow(year int, month time.Month) PeriodWindow {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return PeriodWindow{
		Start: start,
		End:   end,
		Label: start.Format("January 2006"),
	}
}

// PreviousMonth returns the (year, month) immediately before the given one.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}

// ReportCycle derives the identifier and label for a payroll report cycle
// starting at the given date. US EOR payroll runs semi-monthly while every
// other country runs monthly, so the cycle is split into halves only when the
// payslip set contains a US worker; splitting unconditionally would fragment
// non-US cycles.
func ReportCycle(start time.Time, payslips []Payslip) (string, string) {
	id := start.Format("2006-01")
	label := start.Format("January 2006")
	if !hasUSPayslip(payslips) {
		return id, label
	}
	if start.Day() < cycleSplitDay {
		return fmt.Sprintf("%s-1", id), label + " (1st Half)"
	}
	return fmt.Sprintf("%s-2", id), label + " (2nd Half)"
}

func hasUSPayslip(payslips []Payslip) bool {
	for _, p := range payslips {
		if strings.EqualFold(strings.TrimSpace(p.WorkerCountry), "US") {
			return true
		}
	}
	return false
}
