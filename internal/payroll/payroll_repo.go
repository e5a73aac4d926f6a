package payroll

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, line *Line) error
	// UpdatePending rewrites a line's computed amounts only while the
	// stored status is still PENDING; zero rows means a concurrent
	// Finalize won and the recompute must not land.
	UpdatePending(ctx context.Context, line *Line) (int64, error)
	FindByID(ctx context.Context, id string) (*Line, error)
	FindByPersonAndPeriod(ctx context.Context, personID string, periodStart, periodEnd time.Time) (*Line, error)
	FindAllByPerson(ctx context.Context, personID string) ([]Line, error)
	// Finalize flips PENDING to FINALIZED only when the stored status is
	// still PENDING; zero rows means a concurrent writer got there first.
	Finalize(ctx context.Context, id, actorID string, at time.Time) (int64, error)
	// MarkPaid flips FINALIZED to PAID under the same guard.
	MarkPaid(ctx context.Context, id string, at time.Time) (int64, error)
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

func (r *repository) Create(ctx context.Context, line *Line) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *repository) UpdatePending(ctx context.Context, line *Line) (int64, error) {
	query := `
UPDATE payroll_lines
SET
	base_salary = $2,
	overtime_bonus = $3,
	late_deduction = $4,
	absence_deduction = $5,
	other_deductions = $6,
	gross_pay = $7,
	net_pay = $8,
	updated_at = NOW()
WHERE id = $1
	AND status = $9
	AND deleted_at IS NULL
`
	exec, err := r.execer()
	if err != nil {
		return 0, err
	}
	res, err := exec.ExecContext(ctx, query,
		line.ID,
		line.BaseSalary,
		line.OvertimeBonus,
		line.LateDeduction,
		line.AbsenceDeduction,
		line.OtherDeductions,
		line.GrossPay,
		line.NetPay,
		StatusPending,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) FindByID(ctx context.Context, id string) (*Line, error) {
	var line Line
	err := r.db.WithContext(ctx).First(&line, "id = ?", id).Error
	return &line, err
}

func (r *repository) FindByPersonAndPeriod(ctx context.Context, personID string, periodStart, periodEnd time.Time) (*Line, error) {
	var line Line
	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Where("period_start = ?", periodStart.Format("2006-01-02")).
		Where("period_end = ?", periodEnd.Format("2006-01-02")).
		First(&line).Error
	return &line, err
}

func (r *repository) FindAllByPerson(ctx context.Context, personID string) ([]Line, error) {
	var lines []Line
	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("period_start DESC").
		Find(&lines).Error
	return lines, err
}

func (r *repository) Finalize(ctx context.Context, id, actorID string, at time.Time) (int64, error) {
	query := `
UPDATE payroll_lines
SET
	status = $2,
	finalized_by = $3,
	finalized_at = $4,
	updated_at = NOW()
WHERE id = $1
	AND status = $5
	AND deleted_at IS NULL
`
	exec, err := r.execer()
	if err != nil {
		return 0, err
	}
	res, err := exec.ExecContext(ctx, query, id, StatusFinalized, actorID, at, StatusPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) MarkPaid(ctx context.Context, id string, at time.Time) (int64, error) {
	query := `
UPDATE payroll_lines
SET
	status = $2,
	paid_at = $3,
	updated_at = NOW()
WHERE id = $1
	AND status = $4
	AND deleted_at IS NULL
`
	exec, err := r.execer()
	if err != nil {
		return 0, err
	}
	res, err := exec.ExecContext(ctx, query, id, StatusPaid, at, StatusFinalized)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) execer() (interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}, error) {
	if r.tx != nil {
		return r.tx, nil
	}
	return r.db.DB()
}
