package schedule

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=schedule_repo.go -destination=mock/schedule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Entry) error
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Entry, error)
	FindByPersonAndDay(ctx context.Context, personID string, dayOfWeek int) ([]Entry, error)
	FindAllByPerson(ctx context.Context, personID string) ([]Entry, error)
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

func (r *repository) Create(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) Update(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Entry{}, "id = ?", id).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Entry, error) {
	var e Entry
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByPersonAndDay(ctx context.Context, personID string, dayOfWeek int) ([]Entry, error) {
	var rows []Entry
	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Where("day_of_week = ?", dayOfWeek).
		Order("start_minute ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByPerson(ctx context.Context, personID string) ([]Entry, error) {
	var rows []Entry
	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("day_of_week ASC, start_minute ASC").
		Find(&rows).Error
	return rows, err
}
