package schedule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	scheduleerrors "campus-hr/internal/schedule/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=schedule_service.go -destination=mock/schedule_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEntryRequest) (EntryResponse, error)
	Update(ctx context.Context, id string, req UpdateEntryRequest) (EntryResponse, error)
	Delete(ctx context.Context, id string) error
	GetAllByPerson(ctx context.Context, personID string) ([]EntryResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	storeTimeout time.Duration
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, storeTimeout time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("schedule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.service")
	}
	return &service{db: db, repo: repo, storeTimeout: storeTimeout, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEntryRequest) (EntryResponse, error) {
	s.logger.Debug("create schedule entry requested",
		zap.String("person_id", req.PersonID),
		zap.Int("day_of_week", req.DayOfWeek),
	)

	personID, err := uuid.Parse(req.PersonID)
	if err != nil {
		return EntryResponse{}, scheduleerrors.ErrInvalidPersonID
	}
	candidate, err := buildCandidate(personID, req.DayOfWeek, req.StartTime, req.EndTime, req.Subject, req.Room, req.IsOvertime)
	if err != nil {
		return EntryResponse{}, err
	}
	candidate.ID = uuid.New()

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	// The overlap scan and the insert must be one atomic unit per
	// (person, day): serializable isolation closes the window where two
	// concurrent inserts both pass the check against a stale snapshot.
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		s.logger.Error("create schedule entry begin tx failed", zap.Error(err))
		return EntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByPersonAndDay(ctx, req.PersonID, candidate.DayOfWeek)
	if err != nil {
		s.logger.Error("create schedule entry conflict scan failed", zap.Error(err))
		return EntryResponse{}, err
	}

	if conflicts := FindConflicts(candidate, existing, nil); len(conflicts) > 0 {
		s.logger.Warn("create schedule entry conflict detected",
			zap.String("person_id", req.PersonID),
			zap.Int("conflict_count", len(conflicts)),
		)
		return EntryResponse{}, scheduleerrors.ErrScheduleConflict.WithDetails(conflicts)
	}

	if err := qtx.Create(ctx, &candidate); err != nil {
		s.logger.Error("create schedule entry persist failed", zap.Error(err))
		return EntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create schedule entry commit failed", zap.Error(err))
		return EntryResponse{}, err
	}

	s.logger.Info("create schedule entry success",
		zap.String("entry_id", candidate.ID.String()),
		zap.String("person_id", req.PersonID),
	)
	return mapToResponse(candidate), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEntryRequest) (EntryResponse, error) {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return EntryResponse{}, scheduleerrors.ErrInvalidEntryID
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		s.logger.Error("update schedule entry begin tx failed", zap.Error(err))
		return EntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EntryResponse{}, scheduleerrors.ErrEntryNotFound
		}
		return EntryResponse{}, err
	}

	candidate, err := buildCandidate(current.PersonID, req.DayOfWeek, req.StartTime, req.EndTime, req.Subject, req.Room, req.IsOvertime)
	if err != nil {
		return EntryResponse{}, err
	}
	candidate.ID = current.ID
	candidate.CreatedAt = current.CreatedAt

	existing, err := qtx.FindByPersonAndDay(ctx, current.PersonID.String(), candidate.DayOfWeek)
	if err != nil {
		return EntryResponse{}, err
	}

	// The entry being edited is excluded from its own comparison set.
	if conflicts := FindConflicts(candidate, existing, &entryID); len(conflicts) > 0 {
		s.logger.Warn("update schedule entry conflict detected",
			zap.String("entry_id", id),
			zap.Int("conflict_count", len(conflicts)),
		)
		return EntryResponse{}, scheduleerrors.ErrScheduleConflict.WithDetails(conflicts)
	}

	if err := qtx.Update(ctx, &candidate); err != nil {
		s.logger.Error("update schedule entry persist failed", zap.Error(err))
		return EntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EntryResponse{}, err
	}

	s.logger.Info("update schedule entry success", zap.String("entry_id", id))
	return mapToResponse(candidate), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return scheduleerrors.ErrInvalidEntryID
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) GetAllByPerson(ctx context.Context, personID string) ([]EntryResponse, error) {
	if _, err := uuid.Parse(personID); err != nil {
		return nil, scheduleerrors.ErrInvalidPersonID
	}
	rows, err := s.repo.FindAllByPerson(ctx, personID)
	if err != nil {
		return nil, err
	}
	res := make([]EntryResponse, len(rows))
	for i, e := range rows {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

func buildCandidate(
	personID uuid.UUID,
	dayOfWeek int,
	startTime, endTime string,
	subject, room *string,
	isOvertime bool,
) (Entry, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return Entry{}, scheduleerrors.ErrInvalidDayOfWeek
	}
	start, err := ParseClock(startTime)
	if err != nil {
		return Entry{}, scheduleerrors.ErrInvalidClockFormat
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return Entry{}, scheduleerrors.ErrInvalidClockFormat
	}
	// An inverted or empty window is rejected before any overlap check runs.
	if start >= end {
		return Entry{}, scheduleerrors.ErrInvalidTimeWindow
	}

	return Entry{
		PersonID:    personID,
		DayOfWeek:   dayOfWeek,
		StartMinute: start,
		EndMinute:   end,
		Subject:     subject,
		Room:        room,
		IsOvertime:  isOvertime,
	}, nil
}

func mapToResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID.String(),
		PersonID:   e.PersonID.String(),
		DayOfWeek:  e.DayOfWeek,
		StartTime:  FormatClock(e.StartMinute),
		EndTime:    FormatClock(e.EndMinute),
		Subject:    e.Subject,
		Room:       e.Room,
		IsOvertime: e.IsOvertime,
	}
}
