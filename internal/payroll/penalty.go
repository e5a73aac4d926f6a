package payroll

import (
	"campus-hr/internal/attendance"
)

// PenaltyConfig carries the institutional rates. Amounts are centavos.
type PenaltyConfig struct {
	GraceMinutes      int
	LateRatePerMinute int64
	AbsenceRatePerDay int64
	OvertimeBonus     int64
}

type PenaltyResult struct {
	LateDeduction       int64 `json:"late_deduction"`
	AbsenceDeduction    int64 `json:"absence_deduction"`
	OvertimeBonus       int64 `json:"overtime_bonus"`
	TotalAdjustment     int64 `json:"total_adjustment"`
	BillableLateMinutes int   `json:"billable_late_minutes"`
	AbsentDays          int   `json:"absent_days"`
}

// ComputePenalties turns a period of resolved attendance into payroll
// adjustments:
//
//   - absence is a flat charge per calendar day with at least one ABSENT
//     session, no matter how many sessions were missed that day;
//   - lateness bills each LATE session for the minutes past the grace
//     window at the per-minute rate;
//   - an overtime slot pays its flat bonus whenever the person showed up
//     (PRESENT, LATE or COMPLETED), never for a missed one.
//
// TotalAdjustment is bonus minus deductions and is deliberately never
// clamped at zero.
func ComputePenalties(period []attendance.Resolved, cfg PenaltyConfig) PenaltyResult {
	var res PenaltyResult

	absentDates := make(map[string]struct{})
	for _, r := range period {
		switch r.Status {
		case attendance.StatusAbsent:
			absentDates[r.Date.Format("2006-01-02")] = struct{}{}
		case attendance.StatusLate:
			billable := r.MinutesLate - cfg.GraceMinutes
			if billable > 0 {
				res.BillableLateMinutes += billable
			}
		}

		if r.IsOvertimeSlot && r.Attended() {
			res.OvertimeBonus += cfg.OvertimeBonus
		}
	}

	res.AbsentDays = len(absentDates)
	res.AbsenceDeduction = int64(res.AbsentDays) * cfg.AbsenceRatePerDay
	res.LateDeduction = int64(res.BillableLateMinutes) * cfg.LateRatePerMinute
	res.TotalAdjustment = res.OvertimeBonus - res.LateDeduction - res.AbsenceDeduction
	return res
}
