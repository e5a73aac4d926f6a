package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Engine holds the attendance/payroll/approval tunables. Amounts are in
// centavos so payroll math stays in integers.
type Engine struct {
	GraceMinutes          int
	LateRatePerMinute     int64
	AbsenceRatePerDay     int64
	OvertimeBonus         int64
	DeanApprovalPositions []string
	StoreTimeout          time.Duration
}

const (
	defaultGraceMinutes      = 15
	defaultLateRatePerMinute = 100   // PHP 1.00 per minute
	defaultAbsenceRatePerDay = 24000 // PHP 240.00 per absent day
	defaultOvertimeBonus     = 20000 // PHP 200.00 per attended overtime slot
	defaultStoreTimeout      = 5 * time.Second
)

var defaultDeanApprovalPositions = []string{"PROGRAM_HEAD", "FULL_TIME", "PART_TIME"}

func LoadEngine() Engine {
	return Engine{
		GraceMinutes:          envInt("GRACE_PERIOD_MINUTES", defaultGraceMinutes),
		LateRatePerMinute:     envInt64("LATE_RATE_CENTAVOS", defaultLateRatePerMinute),
		AbsenceRatePerDay:     envInt64("ABSENCE_RATE_CENTAVOS", defaultAbsenceRatePerDay),
		OvertimeBonus:         envInt64("OVERTIME_BONUS_CENTAVOS", defaultOvertimeBonus),
		DeanApprovalPositions: envList("DEAN_APPROVAL_POSITIONS", defaultDeanApprovalPositions),
		StoreTimeout:          envDuration("STORE_TIMEOUT", defaultStoreTimeout),
	}
}

// RequiresDeanApproval reports whether a requester position enters the
// dean stage of the approval chain.
func (e Engine) RequiresDeanApproval(position string) bool {
	position = strings.ToUpper(strings.TrimSpace(position))
	for _, p := range e.DeanApprovalPositions {
		if p == position {
			return true
		}
	}
	return false
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			return v
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v >= 0 {
			return v
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
