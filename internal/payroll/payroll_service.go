package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campus-hr/internal/attendance"
	"campus-hr/internal/config"
	"campus-hr/internal/employee"
	"campus-hr/internal/events"
	"campus-hr/internal/messaging/kafka"
	payrollerrors "campus-hr/internal/payroll/errors"
	"campus-hr/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Recompute(ctx context.Context, req RecomputeRequest, actorID string) (LineResponse, error)
	GetByID(ctx context.Context, id string) (LineResponse, error)
	GetByPerson(ctx context.Context, personID string) ([]LineResponse, error)
	Summary(ctx context.Context, personID string, from, to time.Time) (PeriodSummary, error)
	Finalize(ctx context.Context, lineID, actorID string) (LineResponse, error)
	MarkPaid(ctx context.Context, lineID, actorID string) (LineResponse, error)
}

type service struct {
	db            *sql.DB
	repo          Repository
	employeeRepo  employee.Repository
	attendanceSvc attendance.Service
	outboxRepo    kafka.OutboxRepository
	engine        config.Engine
	group         singleflight.Group
	logger        *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	attendanceSvc attendance.Service,
	outboxRepo kafka.OutboxRepository,
	engine config.Engine,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		employeeRepo:  employeeRepo,
		attendanceSvc: attendanceSvc,
		outboxRepo:    outboxRepo,
		engine:        engine,
		logger:        l,
	}
}

func (s *service) penaltyConfig() PenaltyConfig {
	return PenaltyConfig{
		GraceMinutes:      s.engine.GraceMinutes,
		LateRatePerMinute: s.engine.LateRatePerMinute,
		AbsenceRatePerDay: s.engine.AbsenceRatePerDay,
		OvertimeBonus:     s.engine.OvertimeBonus,
	}
}

// Recompute rebuilds the payroll line for a person and period from the
// resolved attendance record. Concurrent recomputes of the same line
// collapse into one pass; a FINALIZED or PAID line is immutable.
func (s *service) Recompute(ctx context.Context, req RecomputeRequest, actorID string) (LineResponse, error) {
	if _, err := uuid.Parse(req.PersonID); err != nil {
		return LineResponse{}, payrollerrors.ErrInvalidPersonID
	}
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return LineResponse{}, payrollerrors.ErrInvalidActorID
	}
	from, to, err := parsePeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return LineResponse{}, err
	}

	// Key on the parsed dates, not the raw strings, so spellings like
	// "2026-3-1" and "2026-03-01" collapse into the same flight.
	key := fmt.Sprintf("%s|%s|%s", req.PersonID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.recompute(ctx, req, actor, from, to)
	})
	if err != nil {
		return LineResponse{}, err
	}
	return v.(LineResponse), nil
}

func (s *service) recompute(ctx context.Context, req RecomputeRequest, actor uuid.UUID, from, to time.Time) (LineResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.engine.StoreTimeout)
	defer cancel()

	person, err := s.employeeRepo.FindByID(ctx, req.PersonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LineResponse{}, payrollerrors.ErrPersonNotFound
		}
		return LineResponse{}, err
	}

	resolved, err := s.attendanceSvc.ResolveRange(ctx, req.PersonID, from, to)
	if err != nil {
		return LineResponse{}, err
	}
	pen := ComputePenalties(resolved, s.penaltyConfig())

	line, err := s.repo.FindByPersonAndPeriod(ctx, req.PersonID, from, to)
	switch {
	case err == nil:
		if line.Status != StatusPending {
			return LineResponse{}, payrollerrors.ErrLineFinalized
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = &Line{
			ID:          uuid.New(),
			PersonID:    person.ID,
			PeriodStart: from,
			PeriodEnd:   to,
			Status:      StatusPending,
			CreatedBy:   actor,
		}
	default:
		return LineResponse{}, err
	}

	line.BaseSalary = person.BaseSalary
	line.OvertimeBonus = pen.OvertimeBonus
	line.LateDeduction = pen.LateDeduction
	line.AbsenceDeduction = pen.AbsenceDeduction
	line.OtherDeductions = req.OtherDeductions
	line.GrossPay = line.BaseSalary + line.OvertimeBonus
	line.NetPay = line.GrossPay - line.LateDeduction - line.AbsenceDeduction - line.OtherDeductions

	if line.CreatedAt.IsZero() {
		err = s.repo.Create(ctx, line)
	} else {
		// The pending check above ran outside any lock; the write itself
		// re-asserts it so a Finalize committing in between stays the
		// last writer.
		var rows int64
		rows, err = s.repo.UpdatePending(ctx, line)
		if err == nil && rows == 0 {
			return LineResponse{}, payrollerrors.ErrStateChanged
		}
	}
	if err != nil {
		s.logger.Error("recompute persist failed",
			zap.String("person_id", req.PersonID),
			zap.Error(err),
		)
		return LineResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("payroll line recomputed",
		zap.String("line_id", line.ID.String()),
		zap.String("person_id", req.PersonID),
		zap.Int64("net_pay", line.NetPay),
		zap.Int("billable_late_minutes", pen.BillableLateMinutes),
		zap.Int("absent_days", pen.AbsentDays),
	)
	return mapLineToResponse(*line), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LineResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LineResponse{}, payrollerrors.ErrInvalidLineID
	}
	line, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LineResponse{}, payrollerrors.ErrLineNotFound
		}
		return LineResponse{}, err
	}
	return mapLineToResponse(*line), nil
}

func (s *service) GetByPerson(ctx context.Context, personID string) ([]LineResponse, error) {
	if _, err := uuid.Parse(personID); err != nil {
		return nil, payrollerrors.ErrInvalidPersonID
	}
	lines, err := s.repo.FindAllByPerson(ctx, personID)
	if err != nil {
		return nil, err
	}
	res := make([]LineResponse, len(lines))
	for i, l := range lines {
		res[i] = mapLineToResponse(l)
	}
	return res, nil
}

// Summary aggregates a period without touching any stored payroll line,
// so HR can preview adjustments before recomputing.
func (s *service) Summary(ctx context.Context, personID string, from, to time.Time) (PeriodSummary, error) {
	if _, err := uuid.Parse(personID); err != nil {
		return PeriodSummary{}, payrollerrors.ErrInvalidPersonID
	}
	if from.After(to) {
		return PeriodSummary{}, payrollerrors.ErrInvalidPeriod
	}

	resolved, err := s.attendanceSvc.ResolveRange(ctx, personID, from, to)
	if err != nil {
		return PeriodSummary{}, err
	}

	sum := PeriodSummary{
		PersonID:    personID,
		PeriodStart: from.Format("2006-01-02"),
		PeriodEnd:   to.Format("2006-01-02"),
		Penalties:   ComputePenalties(resolved, s.penaltyConfig()),
	}
	for _, r := range resolved {
		switch r.Status {
		case attendance.StatusPresent:
			sum.PresentSessions++
		case attendance.StatusLate:
			sum.LateSessions++
		case attendance.StatusCompleted:
			sum.CompletedSessions++
		case attendance.StatusAbsent:
			sum.AbsentSessions++
		case attendance.StatusNoRecord:
			sum.NoRecordSessions++
		}
		sum.HoursWorked += r.HoursWorked
	}
	attended := sum.PresentSessions + sum.LateSessions + sum.CompletedSessions
	if scheduled := attended + sum.AbsentSessions; scheduled > 0 {
		sum.AttendanceRate = float64(attended) / float64(scheduled)
	}
	return sum, nil
}

// Finalize freezes a PENDING line and records the lifecycle event in the
// outbox within the same transaction.
func (s *service) Finalize(ctx context.Context, lineID, actorID string) (LineResponse, error) {
	if _, err := uuid.Parse(lineID); err != nil {
		return LineResponse{}, payrollerrors.ErrInvalidLineID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return LineResponse{}, payrollerrors.ErrInvalidActorID
	}

	ctx, cancel := context.WithTimeout(ctx, s.engine.StoreTimeout)
	defer cancel()

	line, err := s.repo.FindByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LineResponse{}, payrollerrors.ErrLineNotFound
		}
		return LineResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("finalize begin tx failed", zap.Error(err))
		return LineResponse{}, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	rows, err := s.repo.WithTx(tx).Finalize(ctx, lineID, actorID, now)
	if err != nil {
		return LineResponse{}, err
	}
	if rows == 0 {
		return LineResponse{}, payrollerrors.ErrStateChanged
	}

	payload, err := json.Marshal(events.PayrollFinalizedEvent{
		EventType:   "payroll.finalized",
		LineID:      lineID,
		PersonID:    line.PersonID.String(),
		PeriodStart: line.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   line.PeriodEnd.Format("2006-01-02"),
		NetPay:      line.NetPay,
		OccurredAt:  now,
	})
	if err != nil {
		return LineResponse{}, err
	}
	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_line",
		AggregateID:   lineID,
		EventType:     "payroll.finalized",
		Topic:         events.PayrollFinalizedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := s.outboxRepo.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("finalize outbox write failed", zap.Error(err))
		return LineResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LineResponse{}, err
	}

	actor := uuid.MustParse(actorID)
	line.Status = StatusFinalized
	line.FinalizedBy = &actor
	line.FinalizedAt = &now

	s.logger.Info("payroll line finalized",
		zap.String("line_id", lineID),
		zap.String("actor_id", actorID),
	)
	return mapLineToResponse(*line), nil
}

func (s *service) MarkPaid(ctx context.Context, lineID, actorID string) (LineResponse, error) {
	if _, err := uuid.Parse(lineID); err != nil {
		return LineResponse{}, payrollerrors.ErrInvalidLineID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return LineResponse{}, payrollerrors.ErrInvalidActorID
	}

	ctx, cancel := context.WithTimeout(ctx, s.engine.StoreTimeout)
	defer cancel()

	line, err := s.repo.FindByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LineResponse{}, payrollerrors.ErrLineNotFound
		}
		return LineResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark paid begin tx failed", zap.Error(err))
		return LineResponse{}, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	rows, err := s.repo.WithTx(tx).MarkPaid(ctx, lineID, now)
	if err != nil {
		return LineResponse{}, err
	}
	if rows == 0 {
		return LineResponse{}, payrollerrors.ErrStateChanged
	}

	payload, err := json.Marshal(events.PayrollFinalizedEvent{
		EventType:   "payroll.paid",
		LineID:      lineID,
		PersonID:    line.PersonID.String(),
		PeriodStart: line.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   line.PeriodEnd.Format("2006-01-02"),
		NetPay:      line.NetPay,
		OccurredAt:  now,
	})
	if err != nil {
		return LineResponse{}, err
	}
	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_line",
		AggregateID:   lineID,
		EventType:     "payroll.paid",
		Topic:         events.PayrollFinalizedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := s.outboxRepo.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("mark paid outbox write failed", zap.Error(err))
		return LineResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LineResponse{}, err
	}

	line.Status = StatusPaid
	line.PaidAt = &now

	s.logger.Info("payroll line marked paid",
		zap.String("line_id", lineID),
		zap.String("actor_id", actorID),
	)
	return mapLineToResponse(*line), nil
}

func parsePeriod(start, end string) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidPeriod
	}
	return from, to, nil
}

func mapLineToResponse(l Line) LineResponse {
	resp := LineResponse{
		ID:               l.ID.String(),
		PersonID:         l.PersonID.String(),
		PeriodStart:      l.PeriodStart.Format("2006-01-02"),
		PeriodEnd:        l.PeriodEnd.Format("2006-01-02"),
		BaseSalary:       l.BaseSalary,
		OvertimeBonus:    l.OvertimeBonus,
		LateDeduction:    l.LateDeduction,
		AbsenceDeduction: l.AbsenceDeduction,
		OtherDeductions:  l.OtherDeductions,
		GrossPay:         l.GrossPay,
		NetPay:           l.NetPay,
		Status:           l.Status,
		CreatedBy:        l.CreatedBy.String(),
	}
	if l.FinalizedBy != nil {
		v := l.FinalizedBy.String()
		resp.FinalizedBy = &v
	}
	if l.FinalizedAt != nil {
		v := l.FinalizedAt.Format(time.RFC3339)
		resp.FinalizedAt = &v
	}
	if l.PaidAt != nil {
		v := l.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}
