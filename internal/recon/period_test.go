package recon

import (
	"testing"
	"time"
)

func TestMonthWindow(t *testing.T) {
	w := MonthWindow(2024, time.March)
	if got, want := w.Start, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("start = %s, want %s", got, want)
	}
	if w.End.Month() != time.March || w.End.Day() != 31 {
		t.Fatalf("end = %s, want last instant of March", w.End)
	}
	if !w.End.After(w.Start) {
		t.Fatalf("window start %s not before end %s", w.Start, w.End)
	}
	if w.Label != "March 2024" {
		t.Fatalf("label = %q, want %q", w.Label, "March 2024")
	}
}

func TestMonthWindowDecember(t *testing.T) {
	w := MonthWindow(2023, time.December)
	if w.End.Year() != 2023 || w.End.Month() != time.December || w.End.Day() != 31 {
		t.Fatalf("end = %s, want last instant of December 2023", w.End)
	}
}

func TestPreviousMonth(t *testing.T) {
	y, m := PreviousMonth(2024, time.January)
	if y != 2023 || m != time.December {
		t.Fatalf("PreviousMonth(2024, January) = %d-%s", y, m)
	}
	y, m = PreviousMonth(2024, time.July)
	if y != 2024 || m != time.June {
		t.Fatalf("PreviousMonth(2024, July) = %d-%s", y, m)
	}
}

func TestReportCycleSplitsOnlyWithUSPayslips(t *testing.T) {
	us := []Payslip{{ContractID: "c1", WorkerCountry: "DE"}, {ContractID: "c2", WorkerCountry: "US"}}
	nonUS := []Payslip{{ContractID: "c1", WorkerCountry: "DE"}, {ContractID: "c3", WorkerCountry: "BR"}}

	cases := []struct {
		name      string
		start     time.Time
		payslips  []Payslip
		wantID    string
		wantLabel string
	}{
		{
			name:      "first half with US worker",
			start:     time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			payslips:  us,
			wantID:    "2024-03-1",
			wantLabel: "March 2024 (1st Half)",
		},
		{
			name:      "second half with US worker",
			start:     time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
			payslips:  us,
			wantID:    "2024-03-2",
			wantLabel: "March 2024 (2nd Half)",
		},
		{
			name:      "split day boundary",
			start:     time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC),
			payslips:  us,
			wantID:    "2024-03-2",
			wantLabel: "March 2024 (2nd Half)",
		},
		{
			name:      "no US worker keeps plain cycle",
			start:     time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
			payslips:  nonUS,
			wantID:    "2024-03",
			wantLabel: "March 2024",
		},
		{
			name:      "empty payslip set keeps plain cycle",
			start:     time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			payslips:  nil,
			wantID:    "2024-03",
			wantLabel: "March 2024",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, label := ReportCycle(tc.start, tc.payslips)
			if id != tc.wantID {
				t.Fatalf("id = %q, want %q", id, tc.wantID)
			}
			if label != tc.wantLabel {
				t.Fatalf("label = %q, want %q", label, tc.wantLabel)
			}
		})
	}
}

func TestReportCycleCountryCaseInsensitive(t *testing.T) {
	payslips := []Payslip{{WorkerCountry: " us "}}
	id, _ := ReportCycle(time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC), payslips)
	if id != "2024-05-1" {
		t.Fatalf("id = %q, want %q", id, "2024-05-1")
	}
}
