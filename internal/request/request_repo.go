package request

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

//go:generate mockgen -source=request_repo.go -destination=mock/request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *Request) error
	FindByID(ctx context.Context, id string) (*Request, error)
	FindAllByRequester(ctx context.Context, requesterID string) ([]Request, error)
	FindAll(ctx context.Context, status string, limit, offset int) ([]Request, int64, error)
	// TransitionStatus flips status only when the stored status still
	// matches from, optionally updating stage metadata columns in the
	// same statement; zero rows means a concurrent writer won.
	TransitionStatus(ctx context.Context, id, from, to string, set map[string]any) (int64, error)
	AppendAudit(ctx context.Context, entry AuditLog) error
	FindAuditByRequest(ctx context.Context, requestID string) ([]AuditLog, error)
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

func (r *repository) Create(ctx context.Context, req *Request) error {
	query := `
INSERT INTO approval_requests (
	id, requester_id, request_type, status, reason,
	start_date, end_date, destination, time_out, time_in,
	leave_type, duration_days, dean_id, dean_acted_at,
	created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
`
	exec, err := r.execer()
	if err != nil {
		return err
	}
	_, err = exec.ExecContext(
		ctx, query,
		req.ID, req.RequesterID, req.RequestType, req.Status, req.Reason,
		req.StartDate, req.EndDate, req.Destination, req.TimeOut, req.TimeIn,
		req.LeaveType, req.DurationDays, req.DeanID, req.DeanActedAt,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindAllByRequester(ctx context.Context, requesterID string) ([]Request, error) {
	var rows []Request
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context, status string, limit, offset int) ([]Request, int64, error) {
	q := r.db.WithContext(ctx).Model(&Request{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Request
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}

func (r *repository) TransitionStatus(ctx context.Context, id, from, to string, set map[string]any) (int64, error) {
	assignments := []string{"status = $3", "updated_at = NOW()"}
	args := []any{id, from, to}

	cols := make([]string, 0, len(set))
	for col := range set {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		args = append(args, set[col])
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	query := fmt.Sprintf(`
UPDATE approval_requests
SET %s
WHERE id = $1
	AND status = $2
	AND deleted_at IS NULL
`, strings.Join(assignments, ", "))

	exec, err := r.execer()
	if err != nil {
		return 0, err
	}
	res, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) AppendAudit(ctx context.Context, entry AuditLog) error {
	query := `
INSERT INTO request_audit_logs (
	id, request_id, actor_id, action, from_status, to_status, note, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
`
	exec, err := r.execer()
	if err != nil {
		return err
	}
	_, err = exec.ExecContext(
		ctx, query,
		entry.ID, entry.RequestID, entry.ActorID, entry.Action,
		entry.FromStatus, entry.ToStatus, entry.Note,
	)
	return err
}

func (r *repository) FindAuditByRequest(ctx context.Context, requestID string) ([]AuditLog, error) {
	var rows []AuditLog
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) execer() (interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}, error) {
	if r.tx != nil {
		return r.tx, nil
	}
	return r.db.DB()
}
