package schedule_test

import (
	"testing"

	"campus-hr/internal/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func entry(personID uuid.UUID, day, start, end int) schedule.Entry {
	return schedule.Entry{
		ID:          uuid.New(),
		PersonID:    personID,
		DayOfWeek:   day,
		StartMinute: start,
		EndMinute:   end,
	}
}

func TestOverlaps(t *testing.T) {
	person := uuid.New()

	t.Run("partial overlap", func(t *testing.T) {
		a := entry(person, 1, 8*60, 10*60)
		b := entry(person, 1, 9*60, 11*60)
		assert.True(t, schedule.Overlaps(a, b))
		assert.True(t, schedule.Overlaps(b, a))
	})

	t.Run("containment", func(t *testing.T) {
		a := entry(person, 1, 8*60, 12*60)
		b := entry(person, 1, 9*60, 10*60)
		assert.True(t, schedule.Overlaps(a, b))
		assert.True(t, schedule.Overlaps(b, a))
	})

	t.Run("touching endpoints do not overlap", func(t *testing.T) {
		a := entry(person, 1, 8*60, 10*60)
		b := entry(person, 1, 10*60, 12*60)
		assert.False(t, schedule.Overlaps(a, b))
		assert.False(t, schedule.Overlaps(b, a))
	})

	t.Run("disjoint windows", func(t *testing.T) {
		a := entry(person, 1, 8*60, 9*60)
		b := entry(person, 1, 13*60, 14*60)
		assert.False(t, schedule.Overlaps(a, b))
	})

	t.Run("different people never overlap", func(t *testing.T) {
		a := entry(person, 1, 8*60, 10*60)
		b := entry(uuid.New(), 1, 8*60, 10*60)
		assert.False(t, schedule.Overlaps(a, b))
	})

	t.Run("different days never overlap", func(t *testing.T) {
		a := entry(person, 1, 8*60, 10*60)
		b := entry(person, 2, 8*60, 10*60)
		assert.False(t, schedule.Overlaps(a, b))
	})
}

func TestFindConflicts(t *testing.T) {
	person := uuid.New()

	t.Run("collects every colliding entry", func(t *testing.T) {
		existing := []schedule.Entry{
			entry(person, 1, 8*60, 10*60),
			entry(person, 1, 10*60, 11*60),
			entry(person, 1, 9*60+30, 12*60),
		}
		candidate := entry(person, 1, 9*60, 10*60)

		conflicts := schedule.FindConflicts(candidate, existing, nil)
		assert.Len(t, conflicts, 2)
		assert.Equal(t, existing[0].ID.String(), conflicts[0].EntryID)
		assert.Equal(t, "08:00", conflicts[0].StartTime)
		assert.Equal(t, "10:00", conflicts[0].EndTime)
		assert.Equal(t, existing[2].ID.String(), conflicts[1].EntryID)
	})

	t.Run("exclude id removes the edited entry", func(t *testing.T) {
		self := entry(person, 1, 8*60, 10*60)
		candidate := self
		candidate.StartMinute = 8*60 + 30

		conflicts := schedule.FindConflicts(candidate, []schedule.Entry{self}, &self.ID)
		assert.Empty(t, conflicts)
	})

	t.Run("no conflicts returns nil", func(t *testing.T) {
		existing := []schedule.Entry{entry(person, 1, 8*60, 9*60)}
		candidate := entry(person, 1, 9*60, 10*60)
		assert.Empty(t, schedule.FindConflicts(candidate, existing, nil))
	})
}

func TestParseClock(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, err := schedule.ParseClock("08:30")
		assert.NoError(t, err)
		assert.Equal(t, 510, m)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := schedule.ParseClock("8.30am")
		assert.Error(t, err)
	})

	t.Run("round trip", func(t *testing.T) {
		assert.Equal(t, "23:05", schedule.FormatClock(23*60+5))
	})
}
