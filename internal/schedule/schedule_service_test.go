package schedule_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"campus-hr/internal/schedule"
	scheduleerrors "campus-hr/internal/schedule/errors"
	"campus-hr/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeScheduleRepository struct {
	withTxFn             func(tx *sql.Tx) schedule.Repository
	createFn             func(ctx context.Context, e *schedule.Entry) error
	updateFn             func(ctx context.Context, e *schedule.Entry) error
	deleteFn             func(ctx context.Context, id string) error
	findByIDFn           func(ctx context.Context, id string) (*schedule.Entry, error)
	findByPersonAndDayFn func(ctx context.Context, personID string, dayOfWeek int) ([]schedule.Entry, error)
	findAllByPersonFn    func(ctx context.Context, personID string) ([]schedule.Entry, error)
}

func (f *fakeScheduleRepository) WithTx(tx *sql.Tx) schedule.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeScheduleRepository) Create(ctx context.Context, e *schedule.Entry) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeScheduleRepository) Update(ctx context.Context, e *schedule.Entry) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeScheduleRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeScheduleRepository) FindByID(ctx context.Context, id string) (*schedule.Entry, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeScheduleRepository) FindByPersonAndDay(ctx context.Context, personID string, dayOfWeek int) ([]schedule.Entry, error) {
	if f.findByPersonAndDayFn != nil {
		return f.findByPersonAndDayFn(ctx, personID, dayOfWeek)
	}
	return nil, nil
}

func (f *fakeScheduleRepository) FindAllByPerson(ctx context.Context, personID string) ([]schedule.Entry, error) {
	if f.findAllByPersonFn != nil {
		return f.findAllByPersonFn(ctx, personID)
	}
	return nil, nil
}

type scheduleServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service schedule.Service
	repo    *fakeScheduleRepository
}

func setupScheduleServiceTest(t *testing.T) *scheduleServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeScheduleRepository{}
	svc := schedule.NewService(db, repo, 5*time.Second)

	return &scheduleServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func TestScheduleService_Create(t *testing.T) {
	ctx := context.Background()
	personID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByPersonAndDayFn = func(ctx context.Context, pid string, day int) ([]schedule.Entry, error) {
			assert.Equal(t, personID, pid)
			assert.Equal(t, 1, day)
			return nil, nil
		}
		var created *schedule.Entry
		deps.repo.createFn = func(ctx context.Context, e *schedule.Entry) error {
			created = e
			return nil
		}

		resp, err := deps.service.Create(ctx, schedule.CreateEntryRequest{
			PersonID:  personID,
			DayOfWeek: 1,
			StartTime: "08:00",
			EndTime:   "10:00",
		})
		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, 8*60, created.StartMinute)
		assert.Equal(t, 10*60, created.EndMinute)
		assert.Equal(t, "08:00", resp.StartTime)
		assert.Equal(t, "10:00", resp.EndTime)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative conflict rolls back and reports windows", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		existingID := uuid.New()
		deps.repo.findByPersonAndDayFn = func(ctx context.Context, pid string, day int) ([]schedule.Entry, error) {
			return []schedule.Entry{{
				ID:          existingID,
				PersonID:    uuid.MustParse(personID),
				DayOfWeek:   1,
				StartMinute: 9 * 60,
				EndMinute:   11 * 60,
			}}, nil
		}
		deps.repo.createFn = func(ctx context.Context, e *schedule.Entry) error {
			t.Fatal("create must not run when the window conflicts")
			return nil
		}

		_, err := deps.service.Create(ctx, schedule.CreateEntryRequest{
			PersonID:  personID,
			DayOfWeek: 1,
			StartTime: "08:00",
			EndTime:   "10:00",
		})
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeConflict, appErr.Code)

		conflicts, ok := appErr.Details.([]schedule.Conflict)
		assert.True(t, ok)
		assert.Len(t, conflicts, 1)
		assert.Equal(t, existingID.String(), conflicts[0].EntryID)
		assert.Equal(t, "09:00", conflicts[0].StartTime)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative inverted window rejected before overlap scan", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByPersonAndDayFn = func(ctx context.Context, pid string, day int) ([]schedule.Entry, error) {
			t.Fatal("overlap scan must not run for an invalid window")
			return nil, nil
		}

		_, err := deps.service.Create(ctx, schedule.CreateEntryRequest{
			PersonID:  personID,
			DayOfWeek: 1,
			StartTime: "10:00",
			EndTime:   "08:00",
		})
		assert.ErrorIs(t, err, scheduleerrors.ErrInvalidTimeWindow)
	})

	t.Run("negative empty window rejected", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, schedule.CreateEntryRequest{
			PersonID:  personID,
			DayOfWeek: 1,
			StartTime: "08:00",
			EndTime:   "08:00",
		})
		assert.ErrorIs(t, err, scheduleerrors.ErrInvalidTimeWindow)
	})

	t.Run("negative invalid day of week", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, schedule.CreateEntryRequest{
			PersonID:  personID,
			DayOfWeek: 7,
			StartTime: "08:00",
			EndTime:   "10:00",
		})
		assert.ErrorIs(t, err, scheduleerrors.ErrInvalidDayOfWeek)
	})

	t.Run("negative invalid person id", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, schedule.CreateEntryRequest{
			PersonID:  "not-a-uuid",
			DayOfWeek: 1,
			StartTime: "08:00",
			EndTime:   "10:00",
		})
		assert.ErrorIs(t, err, scheduleerrors.ErrInvalidPersonID)
	})
}

func TestScheduleService_Update(t *testing.T) {
	ctx := context.Background()
	personID := uuid.New()
	entryID := uuid.New()

	current := &schedule.Entry{
		ID:          entryID,
		PersonID:    personID,
		DayOfWeek:   1,
		StartMinute: 8 * 60,
		EndMinute:   10 * 60,
	}

	t.Run("success excludes itself from conflict scan", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*schedule.Entry, error) {
			cp := *current
			return &cp, nil
		}
		deps.repo.findByPersonAndDayFn = func(ctx context.Context, pid string, day int) ([]schedule.Entry, error) {
			return []schedule.Entry{*current}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, e *schedule.Entry) error {
			assert.Equal(t, entryID, e.ID)
			assert.Equal(t, 8*60+30, e.StartMinute)
			return nil
		}

		_, err := deps.service.Update(ctx, entryID.String(), schedule.UpdateEntryRequest{
			DayOfWeek: 1,
			StartTime: "08:30",
			EndTime:   "10:00",
		})
		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative conflict against another entry", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		other := schedule.Entry{
			ID:          uuid.New(),
			PersonID:    personID,
			DayOfWeek:   1,
			StartMinute: 10 * 60,
			EndMinute:   12 * 60,
		}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*schedule.Entry, error) {
			cp := *current
			return &cp, nil
		}
		deps.repo.findByPersonAndDayFn = func(ctx context.Context, pid string, day int) ([]schedule.Entry, error) {
			return []schedule.Entry{*current, other}, nil
		}

		_, err := deps.service.Update(ctx, entryID.String(), schedule.UpdateEntryRequest{
			DayOfWeek: 1,
			StartTime: "09:00",
			EndTime:   "11:00",
		})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeConflict, appErr.Code)
	})

	t.Run("negative entry not found", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*schedule.Entry, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Update(ctx, entryID.String(), schedule.UpdateEntryRequest{
			DayOfWeek: 1,
			StartTime: "08:00",
			EndTime:   "10:00",
		})
		assert.ErrorIs(t, err, scheduleerrors.ErrEntryNotFound)
	})
}
