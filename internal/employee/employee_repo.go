package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Person) error
	FindByID(ctx context.Context, id string) (*Person, error)
	FindByEmail(ctx context.Context, email string) (*Person, error)
	FindAllActive(ctx context.Context) ([]Person, error)
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

func (r *repository) Create(ctx context.Context, p *Person) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Person, error) {
	var p Person
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Person, error) {
	var p Person
	err := r.db.WithContext(ctx).First(&p, "email = ?", email).Error
	return &p, err
}

func (r *repository) FindAllActive(ctx context.Context) ([]Person, error) {
	var rows []Person
	err := r.db.WithContext(ctx).
		Where("employment_status = ?", StatusActive).
		Order("full_name ASC").
		Find(&rows).Error
	return rows, err
}
