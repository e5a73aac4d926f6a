package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Event) error
	Update(ctx context.Context, e *Event) error
	FindByID(ctx context.Context, id string) (*Event, error)
	FindByPersonAndDate(ctx context.Context, personID string, date time.Time) ([]Event, error)
	FindByPersonDateEntry(ctx context.Context, personID string, date time.Time, entryID *string) (*Event, error)
	FindByPersonBetween(ctx context.Context, personID string, from, to time.Time) ([]Event, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) Update(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Event, error) {
	var e Event
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByPersonAndDate(ctx context.Context, personID string, date time.Time) ([]Event, error) {
	var rows []Event
	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Where("event_date = ?", date.Format("2006-01-02")).
		Order("time_in ASC NULLS LAST").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByPersonDateEntry(ctx context.Context, personID string, date time.Time, entryID *string) (*Event, error) {
	var e Event
	q := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Where("event_date = ?", date.Format("2006-01-02"))
	if entryID != nil {
		q = q.Where("schedule_entry_id = ?", *entryID)
	} else {
		q = q.Where("schedule_entry_id IS NULL")
	}
	err := q.First(&e).Error
	return &e, err
}

func (r *repository) FindByPersonBetween(ctx context.Context, personID string, from, to time.Time) ([]Event, error) {
	var rows []Event
	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Where("event_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("event_date ASC, time_in ASC NULLS LAST").
		Find(&rows).Error
	return rows, err
}
