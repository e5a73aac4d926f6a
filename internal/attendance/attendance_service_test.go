package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"campus-hr/internal/attendance"
	attendanceerrors "campus-hr/internal/attendance/errors"
	"campus-hr/internal/schedule"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAttendanceRepository struct {
	withTxFn                func(tx *sql.Tx) attendance.Repository
	createFn                func(ctx context.Context, e *attendance.Event) error
	updateFn                func(ctx context.Context, e *attendance.Event) error
	findByIDFn              func(ctx context.Context, id string) (*attendance.Event, error)
	findByPersonAndDateFn   func(ctx context.Context, personID string, date time.Time) ([]attendance.Event, error)
	findByPersonDateEntryFn func(ctx context.Context, personID string, date time.Time, entryID *string) (*attendance.Event, error)
	findByPersonBetweenFn   func(ctx context.Context, personID string, from, to time.Time) ([]attendance.Event, error)
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeAttendanceRepository) Create(ctx context.Context, e *attendance.Event) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeAttendanceRepository) Update(ctx context.Context, e *attendance.Event) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeAttendanceRepository) FindByID(ctx context.Context, id string) (*attendance.Event, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindByPersonAndDate(ctx context.Context, personID string, date time.Time) ([]attendance.Event, error) {
	if f.findByPersonAndDateFn != nil {
		return f.findByPersonAndDateFn(ctx, personID, date)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) FindByPersonDateEntry(ctx context.Context, personID string, date time.Time, entryID *string) (*attendance.Event, error) {
	if f.findByPersonDateEntryFn != nil {
		return f.findByPersonDateEntryFn(ctx, personID, date, entryID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindByPersonBetween(ctx context.Context, personID string, from, to time.Time) ([]attendance.Event, error) {
	if f.findByPersonBetweenFn != nil {
		return f.findByPersonBetweenFn(ctx, personID, from, to)
	}
	return nil, nil
}

type fakeEntryRepository struct {
	findByIDFn           func(ctx context.Context, id string) (*schedule.Entry, error)
	findByPersonAndDayFn func(ctx context.Context, personID string, dayOfWeek int) ([]schedule.Entry, error)
	findAllByPersonFn    func(ctx context.Context, personID string) ([]schedule.Entry, error)
}

func (f *fakeEntryRepository) WithTx(tx *sql.Tx) schedule.Repository { return f }
func (f *fakeEntryRepository) Create(ctx context.Context, e *schedule.Entry) error {
	return nil
}
func (f *fakeEntryRepository) Update(ctx context.Context, e *schedule.Entry) error {
	return nil
}
func (f *fakeEntryRepository) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeEntryRepository) FindByID(ctx context.Context, id string) (*schedule.Entry, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEntryRepository) FindByPersonAndDay(ctx context.Context, personID string, dayOfWeek int) ([]schedule.Entry, error) {
	if f.findByPersonAndDayFn != nil {
		return f.findByPersonAndDayFn(ctx, personID, dayOfWeek)
	}
	return nil, nil
}

func (f *fakeEntryRepository) FindAllByPerson(ctx context.Context, personID string) ([]schedule.Entry, error) {
	if f.findAllByPersonFn != nil {
		return f.findAllByPersonFn(ctx, personID)
	}
	return nil, nil
}

type attendanceServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   attendance.Service
	repo      *fakeAttendanceRepository
	entryRepo *fakeEntryRepository
}

func setupAttendanceServiceTest(t *testing.T) *attendanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAttendanceRepository{}
	entryRepo := &fakeEntryRepository{}
	svc := attendance.NewService(db, repo, entryRepo, grace, 5*time.Second)

	return &attendanceServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, entryRepo: entryRepo}
}

func TestAttendanceService_CheckIn(t *testing.T) {
	ctx := context.Background()
	personID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		var created *attendance.Event
		deps.repo.createFn = func(ctx context.Context, e *attendance.Event) error {
			created = e
			return nil
		}

		resp, err := deps.service.CheckIn(ctx, attendance.CheckInRequest{PersonID: personID})
		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.NotNil(t, created.TimeIn)
		assert.NotNil(t, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative duplicate check in", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		now := time.Now().UTC()
		deps.repo.findByPersonDateEntryFn = func(ctx context.Context, pid string, date time.Time, entryID *string) (*attendance.Event, error) {
			return &attendance.Event{TimeIn: &now}, nil
		}

		_, err := deps.service.CheckIn(ctx, attendance.CheckInRequest{PersonID: personID})
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	})

	t.Run("negative invalid person id", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.CheckIn(ctx, attendance.CheckInRequest{PersonID: "nope"})
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidPersonID)
	})
}

func TestAttendanceService_ResolveDay(t *testing.T) {
	ctx := context.Background()
	personID := uuid.New()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // Monday, weekday 1

	morning := schedule.Entry{
		ID:          uuid.New(),
		PersonID:    personID,
		DayOfWeek:   1,
		StartMinute: 8 * 60,
		EndMinute:   10 * 60,
	}
	afternoon := schedule.Entry{
		ID:          uuid.New(),
		PersonID:    personID,
		DayOfWeek:   1,
		StartMinute: 13 * 60,
		EndMinute:   15 * 60,
	}

	t.Run("each session resolves independently, missing ones become absent", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.entryRepo.findByPersonAndDayFn = func(ctx context.Context, pid string, day int) ([]schedule.Entry, error) {
			assert.Equal(t, 1, day)
			return []schedule.Entry{morning, afternoon}, nil
		}
		timeIn := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
		deps.repo.findByPersonAndDateFn = func(ctx context.Context, pid string, d time.Time) ([]attendance.Event, error) {
			return []attendance.Event{{
				ID:              uuid.New(),
				PersonID:        personID,
				ScheduleEntryID: &morning.ID,
				EventDate:       date,
				TimeIn:          &timeIn,
			}}, nil
		}

		resolved, err := deps.service.ResolveDay(ctx, personID.String(), date)
		assert.NoError(t, err)
		assert.Len(t, resolved, 2)

		byEntry := make(map[uuid.UUID]attendance.Resolved)
		for _, r := range resolved {
			assert.NotNil(t, r.ScheduleEntryID)
			byEntry[*r.ScheduleEntryID] = r
		}
		assert.Equal(t, attendance.StatusPresent, byEntry[morning.ID].Status)
		assert.Equal(t, attendance.StatusAbsent, byEntry[afternoon.ID].Status)
	})

	t.Run("free events resolve without a session window", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.entryRepo.findByPersonAndDayFn = func(ctx context.Context, pid string, day int) ([]schedule.Entry, error) {
			return nil, nil
		}
		timeIn := time.Date(2026, 3, 2, 11, 30, 0, 0, time.UTC)
		deps.repo.findByPersonAndDateFn = func(ctx context.Context, pid string, d time.Time) ([]attendance.Event, error) {
			return []attendance.Event{{
				ID:        uuid.New(),
				PersonID:  personID,
				EventDate: date,
				TimeIn:    &timeIn,
			}}, nil
		}

		resolved, err := deps.service.ResolveDay(ctx, personID.String(), date)
		assert.NoError(t, err)
		assert.Len(t, resolved, 1)
		assert.Equal(t, attendance.StatusPresent, resolved[0].Status)
		assert.Nil(t, resolved[0].ScheduleEntryID)
		assert.Equal(t, 0, resolved[0].MinutesLate)
	})
}

func TestAttendanceService_ResolveRange(t *testing.T) {
	ctx := context.Background()
	personID := uuid.New()

	t.Run("negative inverted range", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		_, err := deps.service.ResolveRange(ctx, personID.String(), from, to)
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateRange)
	})

	t.Run("covers every scheduled weekday in the window", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		monday := schedule.Entry{
			ID:          uuid.New(),
			PersonID:    personID,
			DayOfWeek:   1,
			StartMinute: 8 * 60,
			EndMinute:   10 * 60,
		}
		deps.entryRepo.findAllByPersonFn = func(ctx context.Context, pid string) ([]schedule.Entry, error) {
			return []schedule.Entry{monday}, nil
		}
		deps.repo.findByPersonBetweenFn = func(ctx context.Context, pid string, from, to time.Time) ([]attendance.Event, error) {
			return nil, nil
		}

		// Two Mondays in the window, both with no capture.
		from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
		resolved, err := deps.service.ResolveRange(ctx, personID.String(), from, to)
		assert.NoError(t, err)
		assert.Len(t, resolved, 2)
		for _, r := range resolved {
			assert.Equal(t, attendance.StatusAbsent, r.Status)
		}
	})
}
