package payroll_test

import (
	"testing"
	"time"

	"campus-hr/internal/attendance"
	"campus-hr/internal/payroll"

	"github.com/stretchr/testify/assert"
)

var testRates = payroll.PenaltyConfig{
	GraceMinutes:      15,
	LateRatePerMinute: 100,
	AbsenceRatePerDay: 24000,
	OvertimeBonus:     20000,
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestComputePenalties(t *testing.T) {
	t.Run("empty period is all zero", func(t *testing.T) {
		res := payroll.ComputePenalties(nil, testRates)
		assert.Zero(t, res.LateDeduction)
		assert.Zero(t, res.AbsenceDeduction)
		assert.Zero(t, res.OvertimeBonus)
		assert.Zero(t, res.TotalAdjustment)
	})

	t.Run("late bills only the minutes past grace", func(t *testing.T) {
		period := []attendance.Resolved{
			{Date: day(2), Status: attendance.StatusLate, MinutesLate: 16},
			{Date: day(3), Status: attendance.StatusLate, MinutesLate: 45},
		}
		res := payroll.ComputePenalties(period, testRates)
		assert.Equal(t, 31, res.BillableLateMinutes) // 1 + 30
		assert.Equal(t, int64(3100), res.LateDeduction)
		assert.Equal(t, int64(-3100), res.TotalAdjustment)
	})

	t.Run("late at exactly grace bills nothing", func(t *testing.T) {
		period := []attendance.Resolved{
			{Date: day(2), Status: attendance.StatusLate, MinutesLate: 15},
		}
		res := payroll.ComputePenalties(period, testRates)
		assert.Zero(t, res.BillableLateMinutes)
		assert.Zero(t, res.LateDeduction)
	})

	t.Run("absence is flat per distinct day", func(t *testing.T) {
		period := []attendance.Resolved{
			{Date: day(2), Status: attendance.StatusAbsent},
			{Date: day(2), Status: attendance.StatusAbsent}, // second missed session, same day
			{Date: day(3), Status: attendance.StatusAbsent},
		}
		res := payroll.ComputePenalties(period, testRates)
		assert.Equal(t, 2, res.AbsentDays)
		assert.Equal(t, int64(48000), res.AbsenceDeduction)
	})

	t.Run("overtime pays per attended slot, never for a missed one", func(t *testing.T) {
		period := []attendance.Resolved{
			{Date: day(2), Status: attendance.StatusPresent, IsOvertimeSlot: true},
			{Date: day(3), Status: attendance.StatusLate, MinutesLate: 20, IsOvertimeSlot: true},
			{Date: day(4), Status: attendance.StatusCompleted, IsOvertimeSlot: true},
			{Date: day(5), Status: attendance.StatusAbsent, IsOvertimeSlot: true},
		}
		res := payroll.ComputePenalties(period, testRates)
		assert.Equal(t, int64(60000), res.OvertimeBonus)
		assert.Equal(t, 1, res.AbsentDays)
	})

	t.Run("total adjustment can go negative and is not clamped", func(t *testing.T) {
		period := []attendance.Resolved{
			{Date: day(2), Status: attendance.StatusPresent, IsOvertimeSlot: true}, // +20000
			{Date: day(3), Status: attendance.StatusLate, MinutesLate: 45},         // -3000
			{Date: day(4), Status: attendance.StatusAbsent},                        // -24000
			{Date: day(5), Status: attendance.StatusAbsent},                        // -24000
		}
		res := payroll.ComputePenalties(period, testRates)
		assert.Equal(t, int64(20000), res.OvertimeBonus)
		assert.Equal(t, int64(3000), res.LateDeduction)
		assert.Equal(t, int64(48000), res.AbsenceDeduction)
		assert.Equal(t, int64(-31000), res.TotalAdjustment)
	})

	t.Run("no record sessions contribute nothing", func(t *testing.T) {
		period := []attendance.Resolved{
			{Date: day(2), Status: attendance.StatusNoRecord},
		}
		res := payroll.ComputePenalties(period, testRates)
		assert.Zero(t, res.TotalAdjustment)
	})

	t.Run("more lateness never reduces the deduction", func(t *testing.T) {
		prev := int64(0)
		for minutes := 16; minutes <= 60; minutes += 4 {
			period := []attendance.Resolved{
				{Date: day(2), Status: attendance.StatusLate, MinutesLate: minutes},
			}
			res := payroll.ComputePenalties(period, testRates)
			assert.GreaterOrEqual(t, res.LateDeduction, prev)
			prev = res.LateDeduction
		}
	})
}
