package config_test

import (
	"testing"
	"time"

	"campus-hr/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoadEngine_Defaults(t *testing.T) {
	eng := config.LoadEngine()

	assert.Equal(t, 15, eng.GraceMinutes)
	assert.Equal(t, int64(100), eng.LateRatePerMinute)
	assert.Equal(t, int64(24000), eng.AbsenceRatePerDay)
	assert.Equal(t, int64(20000), eng.OvertimeBonus)
	assert.Equal(t, []string{"PROGRAM_HEAD", "FULL_TIME", "PART_TIME"}, eng.DeanApprovalPositions)
	assert.Equal(t, 5*time.Second, eng.StoreTimeout)
}

func TestLoadEngine_EnvOverrides(t *testing.T) {
	t.Setenv("GRACE_PERIOD_MINUTES", "10")
	t.Setenv("LATE_RATE_CENTAVOS", "250")
	t.Setenv("ABSENCE_RATE_CENTAVOS", "30000")
	t.Setenv("OVERTIME_BONUS_CENTAVOS", "0")
	t.Setenv("DEAN_APPROVAL_POSITIONS", " program_head , full_time ")
	t.Setenv("STORE_TIMEOUT", "2s")

	eng := config.LoadEngine()

	assert.Equal(t, 10, eng.GraceMinutes)
	assert.Equal(t, int64(250), eng.LateRatePerMinute)
	assert.Equal(t, int64(30000), eng.AbsenceRatePerDay)
	assert.Equal(t, int64(0), eng.OvertimeBonus)
	assert.Equal(t, []string{"PROGRAM_HEAD", "FULL_TIME"}, eng.DeanApprovalPositions)
	assert.Equal(t, 2*time.Second, eng.StoreTimeout)
}

func TestLoadEngine_BadValuesFallBack(t *testing.T) {
	t.Setenv("GRACE_PERIOD_MINUTES", "not-a-number")
	t.Setenv("LATE_RATE_CENTAVOS", "-5")
	t.Setenv("STORE_TIMEOUT", "soon")

	eng := config.LoadEngine()

	assert.Equal(t, 15, eng.GraceMinutes)
	assert.Equal(t, int64(100), eng.LateRatePerMinute)
	assert.Equal(t, 5*time.Second, eng.StoreTimeout)
}

func TestRequiresDeanApproval(t *testing.T) {
	eng := config.LoadEngine()

	assert.True(t, eng.RequiresDeanApproval("FULL_TIME"))
	assert.True(t, eng.RequiresDeanApproval("full_time"))
	assert.True(t, eng.RequiresDeanApproval("  Program_Head "))
	assert.False(t, eng.RequiresDeanApproval("DEAN"))
	assert.False(t, eng.RequiresDeanApproval(""))
}
