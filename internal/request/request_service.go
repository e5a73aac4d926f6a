package request

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"campus-hr/internal/config"
	"campus-hr/internal/employee"
	"campus-hr/internal/events"
	"campus-hr/internal/messaging/kafka"
	requesterrors "campus-hr/internal/request/errors"
	"campus-hr/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=request_service.go -destination=mock/request_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateRequest, requesterID string) (RequestResponse, error)
	GetByID(ctx context.Context, id string) (RequestResponse, error)
	ListByRequester(ctx context.Context, requesterID string) ([]RequestResponse, error)
	List(ctx context.Context, status string, page, limit int) ([]RequestResponse, int64, error)
	GetAuditTrail(ctx context.Context, requestID string) ([]AuditLogResponse, error)
	Approve(ctx context.Context, id, actorID string) (RequestResponse, error)
	Reject(ctx context.Context, id, actorID, reason string) (RequestResponse, error)
	GuardApprove(ctx context.Context, id, actorID string) (RequestResponse, error)
	GuardUnapprove(ctx context.Context, id, actorID string) (RequestResponse, error)
	Cancel(ctx context.Context, id, requesterID string) (RequestResponse, error)
}

// allowedTransitions is the full approval state machine. The guard
// stage round-trips GUARD_APPROVED back to DEAN_APPROVED so a scanned
// gate pass can be un-scanned.
var allowedTransitions = map[string][]string{
	StatusPending:       {StatusDeanApproved, StatusRejected, StatusCancelled},
	StatusDeanApproved:  {StatusGuardApproved, StatusRejected},
	StatusGuardApproved: {StatusDeanApproved},
}

func isAllowedTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	outboxRepo   kafka.OutboxRepository
	engine       config.Engine
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	outboxRepo kafka.OutboxRepository,
	engine config.Engine,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		outboxRepo:   outboxRepo,
		engine:       engine,
		logger:       l,
	}
}

// Create opens an approval chain. Requesters whose position sits outside
// the dean's remit skip the dean stage entirely: their requests are born
// DEAN_APPROVED, with an audit entry recording the bypass.
func (s *service) Create(ctx context.Context, req CreateRequest, requesterID string) (RequestResponse, error) {
	requester, err := uuid.Parse(requesterID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidRequesterID
	}
	if !IsValidType(req.RequestType) {
		return RequestResponse{}, requesterrors.ErrInvalidRequestType
	}
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return RequestResponse{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.engine.StoreTimeout)
	defer cancel()

	person, err := s.employeeRepo.FindByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrRequesterNotFound
		}
		return RequestResponse{}, err
	}

	now := time.Now().UTC()
	row := &Request{
		ID:          uuid.New(),
		RequesterID: requester,
		RequestType: req.RequestType,
		Status:      StatusPending,
		Reason:      req.Reason,
		StartDate:   startDate,
		EndDate:     endDate,
	}
	if err := applyTypePayload(row, req); err != nil {
		return RequestResponse{}, err
	}

	position := ""
	if person.Position != nil {
		position = *person.Position
	}
	bypassed := !s.engine.RequiresDeanApproval(position)
	if bypassed {
		row.Status = StatusDeanApproved
		row.DeanActedAt = &now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("create request persist failed", zap.Error(err))
		return RequestResponse{}, err
	}

	var note *string
	if bypassed {
		v := "dean stage bypassed for position " + position
		note = &v
	}
	if err := qtx.AppendAudit(ctx, AuditLog{
		ID:         uuid.New(),
		RequestID:  row.ID,
		ActorID:    requester,
		Action:     "create",
		FromStatus: StatusPending,
		ToStatus:   row.Status,
		Note:       note,
	}); err != nil {
		return RequestResponse{}, err
	}

	if err := s.writeTransitionEvent(ctx, tx, row, "request.created", requesterID, StatusPending, row.Status, now); err != nil {
		return RequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RequestResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("request created",
		zap.String("request_id", row.ID.String()),
		zap.String("request_type", row.RequestType),
		zap.String("status", row.Status),
		zap.Bool("dean_bypassed", bypassed),
	)
	row.CreatedAt = now
	return mapRequestToResponse(*row), nil
}

// Approve records the dean's decision on a pending request.
func (s *service) Approve(ctx context.Context, id, actorID string) (RequestResponse, error) {
	now := time.Now().UTC()
	return s.transition(ctx, id, actorID, transitionSpec{
		action: "dean_approve",
		event:  "request.dean_approved",
		from:   StatusPending,
		to:     StatusDeanApproved,
		set: map[string]any{
			"dean_id":       actorID,
			"dean_acted_at": now,
		},
	})
}

// Reject closes a request from either pre-terminal stage. The reason is
// mandatory and lands on the request row and the audit trail.
func (s *service) Reject(ctx context.Context, id, actorID, reason string) (RequestResponse, error) {
	if reason == "" {
		return RequestResponse{}, requesterrors.ErrReasonRequired
	}
	row, err := s.load(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}
	if !isAllowedTransition(row.Status, StatusRejected) {
		return RequestResponse{}, requesterrors.ErrIllegalTransition
	}

	now := time.Now().UTC()
	return s.transition(ctx, id, actorID, transitionSpec{
		action: "reject",
		event:  "request.rejected",
		from:   row.Status,
		to:     StatusRejected,
		note:   &reason,
		set: map[string]any{
			"rejected_by":      actorID,
			"rejected_at":      now,
			"rejection_reason": reason,
		},
	})
}

// GuardApprove is the gate scan: it only exists for gate passes that
// already carry dean approval.
func (s *service) GuardApprove(ctx context.Context, id, actorID string) (RequestResponse, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}
	if row.RequestType != TypeGatePass {
		return RequestResponse{}, requesterrors.ErrGatePassOnly
	}

	now := time.Now().UTC()
	return s.transition(ctx, id, actorID, transitionSpec{
		action: "guard_approve",
		event:  "request.guard_approved",
		from:   StatusDeanApproved,
		to:     StatusGuardApproved,
		set: map[string]any{
			"guard_id":       actorID,
			"guard_acted_at": now,
		},
	})
}

// GuardUnapprove reverses a gate scan. Only the guard stage metadata is
// cleared; the dean's decision stays on the record.
func (s *service) GuardUnapprove(ctx context.Context, id, actorID string) (RequestResponse, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}
	if row.RequestType != TypeGatePass {
		return RequestResponse{}, requesterrors.ErrGatePassOnly
	}

	return s.transition(ctx, id, actorID, transitionSpec{
		action: "guard_unapprove",
		event:  "request.guard_unapproved",
		from:   StatusGuardApproved,
		to:     StatusDeanApproved,
		set: map[string]any{
			"guard_id":       nil,
			"guard_acted_at": nil,
		},
	})
}

// Cancel withdraws a request. Only the requester may cancel, and only
// while nothing has been decided yet.
func (s *service) Cancel(ctx context.Context, id, requesterID string) (RequestResponse, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}
	if row.RequesterID.String() != requesterID {
		return RequestResponse{}, requesterrors.ErrNotRequester
	}
	if row.Status != StatusPending {
		return RequestResponse{}, requesterrors.ErrIllegalTransition
	}

	now := time.Now().UTC()
	return s.transition(ctx, id, requesterID, transitionSpec{
		action: "cancel",
		event:  "request.cancelled",
		from:   StatusPending,
		to:     StatusCancelled,
		set: map[string]any{
			"cancelled_at": now,
		},
	})
}

func (s *service) GetByID(ctx context.Context, id string) (RequestResponse, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}
	return mapRequestToResponse(*row), nil
}

func (s *service) ListByRequester(ctx context.Context, requesterID string) ([]RequestResponse, error) {
	if _, err := uuid.Parse(requesterID); err != nil {
		return nil, requesterrors.ErrInvalidRequesterID
	}
	rows, err := s.repo.FindAllByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return mapRequestList(rows), nil
}

func (s *service) List(ctx context.Context, status string, page, limit int) ([]RequestResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	rows, total, err := s.repo.FindAll(ctx, status, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	return mapRequestList(rows), total, nil
}

func (s *service) GetAuditTrail(ctx context.Context, requestID string) ([]AuditLogResponse, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return nil, requesterrors.ErrInvalidRequestID
	}
	rows, err := s.repo.FindAuditByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	out := make([]AuditLogResponse, len(rows))
	for i, a := range rows {
		out[i] = AuditLogResponse{
			ID:         a.ID.String(),
			RequestID:  a.RequestID.String(),
			ActorID:    a.ActorID.String(),
			Action:     a.Action,
			FromStatus: a.FromStatus,
			ToStatus:   a.ToStatus,
			Note:       a.Note,
			CreatedAt:  a.CreatedAt.Format(time.RFC3339),
		}
	}
	return out, nil
}

type transitionSpec struct {
	action string
	event  string
	from   string
	to     string
	note   *string
	set    map[string]any
}

// transition performs the conditional status flip, the audit append and
// the outbox write in one transaction. A statically illegal move (the
// request is simply not at spec.from) is a validation error; a zero-row
// update after that check means the request moved between the read and
// the write, which surfaces as a conflict rather than a silent
// double-apply.
func (s *service) transition(ctx context.Context, id, actorID string, spec transitionSpec) (RequestResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidRequestID
	}
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidActorID
	}

	ctx, cancel := context.WithTimeout(ctx, s.engine.StoreTimeout)
	defer cancel()

	row, err := s.load(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}
	if row.Status != spec.from || !isAllowedTransition(spec.from, spec.to) {
		return RequestResponse{}, requesterrors.ErrIllegalTransition
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rows, err := qtx.TransitionStatus(ctx, id, spec.from, spec.to, spec.set)
	if err != nil {
		return RequestResponse{}, err
	}
	if rows == 0 {
		return RequestResponse{}, requesterrors.ErrStateChanged
	}

	if err := qtx.AppendAudit(ctx, AuditLog{
		ID:         uuid.New(),
		RequestID:  uuid.MustParse(id),
		ActorID:    actor,
		Action:     spec.action,
		FromStatus: spec.from,
		ToStatus:   spec.to,
		Note:       spec.note,
	}); err != nil {
		return RequestResponse{}, err
	}

	if err := s.writeTransitionEvent(ctx, tx, row, spec.event, actorID, spec.from, spec.to, time.Now().UTC()); err != nil {
		return RequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RequestResponse{}, err
	}

	row, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("request transitioned",
		zap.String("request_id", id),
		zap.String("action", spec.action),
		zap.String("from", spec.from),
		zap.String("to", spec.to),
		zap.String("actor_id", actorID),
	)

	return mapRequestToResponse(*row), nil
}

func (s *service) writeTransitionEvent(ctx context.Context, tx *sql.Tx, row *Request, eventType, actorID, from, to string, at time.Time) error {
	payload, err := json.Marshal(events.RequestTransitionedEvent{
		EventType:   eventType,
		RequestID:   row.ID.String(),
		RequestType: row.RequestType,
		ActorID:     actorID,
		FromStatus:  from,
		ToStatus:    to,
		OccurredAt:  at,
	})
	if err != nil {
		return err
	}
	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "approval_request",
		AggregateID:   row.ID.String(),
		EventType:     eventType,
		Topic:         events.RequestTransitionedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) load(ctx context.Context, id string) (*Request, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, requesterrors.ErrInvalidRequestID
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, requesterrors.ErrRequestNotFound
		}
		return nil, err
	}
	return row, nil
}

// applyTypePayload validates and attaches the fields specific to the
// request type. Gate passes carry a destination and an exit/return
// window; leaves carry a leave type and an inclusive day count.
func applyTypePayload(row *Request, req CreateRequest) error {
	switch req.RequestType {
	case TypeGatePass:
		if req.Destination == nil || strings.TrimSpace(*req.Destination) == "" {
			return requesterrors.ErrDestinationRequired
		}
		row.Destination = req.Destination

		timeOut, err := parseClock(req.TimeOut)
		if err != nil {
			return err
		}
		timeIn, err := parseClock(req.TimeIn)
		if err != nil {
			return err
		}
		if timeOut != nil && timeIn != nil && !timeOut.Before(*timeIn) {
			return requesterrors.ErrInvalidGateWindow
		}
		row.TimeOut = timeOut
		row.TimeIn = timeIn
	case TypeLeave:
		if row.StartDate == nil || row.EndDate == nil {
			return requesterrors.ErrLeaveDatesRequired
		}
		row.LeaveType = req.LeaveType
		days := int(row.EndDate.Sub(*row.StartDate).Hours()/24) + 1
		row.DurationDays = &days
	}
	return nil
}

func parseClock(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		return nil, requesterrors.ErrInvalidGateWindow
	}
	return &t, nil
}

func parseDateRange(start, end *string) (*time.Time, *time.Time, error) {
	parse := func(v *string) (*time.Time, error) {
		if v == nil || *v == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", *v)
		if err != nil {
			return nil, requesterrors.ErrInvalidDateRange
		}
		return &t, nil
	}

	from, err := parse(start)
	if err != nil {
		return nil, nil, err
	}
	to, err := parse(end)
	if err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, requesterrors.ErrInvalidDateRange
	}
	return from, to, nil
}

func mapRequestList(rows []Request) []RequestResponse {
	out := make([]RequestResponse, len(rows))
	for i, r := range rows {
		out[i] = mapRequestToResponse(r)
	}
	return out
}

func mapRequestToResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:              r.ID.String(),
		RequesterID:     r.RequesterID.String(),
		RequestType:     r.RequestType,
		Status:          r.Status,
		Reason:          r.Reason,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
	if r.StartDate != nil {
		v := r.StartDate.Format("2006-01-02")
		resp.StartDate = &v
	}
	if r.EndDate != nil {
		v := r.EndDate.Format("2006-01-02")
		resp.EndDate = &v
	}
	resp.Destination = r.Destination
	if r.TimeOut != nil {
		v := r.TimeOut.Format(time.RFC3339)
		resp.TimeOut = &v
	}
	if r.TimeIn != nil {
		v := r.TimeIn.Format(time.RFC3339)
		resp.TimeIn = &v
	}
	resp.LeaveType = r.LeaveType
	resp.DurationDays = r.DurationDays
	if r.DeanID != nil {
		v := r.DeanID.String()
		resp.DeanID = &v
	}
	if r.DeanActedAt != nil {
		v := r.DeanActedAt.Format(time.RFC3339)
		resp.DeanActedAt = &v
	}
	if r.GuardID != nil {
		v := r.GuardID.String()
		resp.GuardID = &v
	}
	if r.GuardActedAt != nil {
		v := r.GuardActedAt.Format(time.RFC3339)
		resp.GuardActedAt = &v
	}
	if r.RejectedBy != nil {
		v := r.RejectedBy.String()
		resp.RejectedBy = &v
	}
	if r.RejectedAt != nil {
		v := r.RejectedAt.Format(time.RFC3339)
		resp.RejectedAt = &v
	}
	if r.CancelledAt != nil {
		v := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &v
	}
	return resp
}
