package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "campus-hr/internal/attendance/errors"
	"campus-hr/internal/schedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest) (EventResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (EventResponse, error)
	ResolveDay(ctx context.Context, personID string, date time.Time) ([]Resolved, error)
	ResolveRange(ctx context.Context, personID string, from, to time.Time) ([]Resolved, error)
	GetEvents(ctx context.Context, personID string, from, to time.Time) ([]EventResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	scheduleRepo schedule.Repository
	graceMinutes int
	storeTimeout time.Duration
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	scheduleRepo schedule.Repository,
	graceMinutes int,
	storeTimeout time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		scheduleRepo: scheduleRepo,
		graceMinutes: graceMinutes,
		storeTimeout: storeTimeout,
		logger:       l,
	}
}

func (s *service) CheckIn(ctx context.Context, req CheckInRequest) (EventResponse, error) {
	s.logger.Debug("check in requested",
		zap.String("person_id", req.PersonID),
	)

	if _, err := uuid.Parse(req.PersonID); err != nil {
		return EventResponse{}, attendanceerrors.ErrInvalidPersonID
	}
	var entryID *uuid.UUID
	if req.ScheduleEntryID != nil && *req.ScheduleEntryID != "" {
		parsed, err := uuid.Parse(*req.ScheduleEntryID)
		if err != nil {
			return EventResponse{}, attendanceerrors.ErrInvalidScheduleEntryID
		}
		entryID = &parsed
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check in begin tx failed", zap.Error(err))
		return EventResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	existing, err := qtx.FindByPersonDateEntry(ctx, req.PersonID, today, req.ScheduleEntryID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return EventResponse{}, err
	}
	if err == nil && existing != nil && existing.TimeIn != nil {
		return EventResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	var entry *schedule.Entry
	if entryID != nil {
		entry, err = s.scheduleRepo.FindByID(ctx, entryID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return EventResponse{}, attendanceerrors.ErrScheduleEntryNotFound
			}
			return EventResponse{}, err
		}
	}

	source := req.Source
	if source == "" {
		source = "MANUAL"
	}

	row := &Event{
		ID:              uuid.New(),
		PersonID:        uuid.MustParse(req.PersonID),
		ScheduleEntryID: entryID,
		EventDate:       today,
		TimeIn:          &now,
		Source:          source,
		Notes:           req.Notes,
	}

	resolved, err := Resolve(row, entry, s.graceMinutes)
	if err != nil {
		return EventResponse{}, err
	}
	row.Status = &resolved.Status

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("check in persist failed", zap.Error(err))
		return EventResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EventResponse{}, err
	}

	s.logger.Info("check in success",
		zap.String("event_id", row.ID.String()),
		zap.String("person_id", req.PersonID),
		zap.String("status", resolved.Status),
	)
	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, req CheckOutRequest) (EventResponse, error) {
	if _, err := uuid.Parse(req.PersonID); err != nil {
		return EventResponse{}, attendanceerrors.ErrInvalidPersonID
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check out begin tx failed", zap.Error(err))
		return EventResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	row, err := qtx.FindByPersonDateEntry(ctx, req.PersonID, today, req.ScheduleEntryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EventResponse{}, attendanceerrors.ErrCheckInNotFound
		}
		return EventResponse{}, err
	}
	if row.TimeIn == nil {
		return EventResponse{}, attendanceerrors.ErrCheckInNotFound
	}
	if row.TimeOut != nil {
		return EventResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	row.TimeOut = &now
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	var entry *schedule.Entry
	if row.ScheduleEntryID != nil {
		entry, err = s.scheduleRepo.FindByID(ctx, row.ScheduleEntryID.String())
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return EventResponse{}, err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = nil
		}
	}

	resolved, err := Resolve(row, entry, s.graceMinutes)
	if err != nil {
		return EventResponse{}, err
	}
	row.Status = &resolved.Status

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("check out persist failed", zap.Error(err))
		return EventResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EventResponse{}, err
	}

	s.logger.Info("check out success",
		zap.String("event_id", row.ID.String()),
		zap.String("status", resolved.Status),
	)
	return mapToResponse(*row), nil
}

// ResolveDay derives one verdict per session for a person and date:
// each scheduled session resolves against its own event independently,
// and sessions with no event at all resolve to an explicit absence.
func (s *service) ResolveDay(ctx context.Context, personID string, date time.Time) ([]Resolved, error) {
	if _, err := uuid.Parse(personID); err != nil {
		return nil, attendanceerrors.ErrInvalidPersonID
	}

	entries, err := s.scheduleRepo.FindByPersonAndDay(ctx, personID, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	events, err := s.repo.FindByPersonAndDate(ctx, personID, date)
	if err != nil {
		return nil, err
	}

	return s.resolveSessions(date, entries, events)
}

// ResolveRange derives verdicts for every date in [from, to], the shape
// the payroll engine consumes.
func (s *service) ResolveRange(ctx context.Context, personID string, from, to time.Time) ([]Resolved, error) {
	if _, err := uuid.Parse(personID); err != nil {
		return nil, attendanceerrors.ErrInvalidPersonID
	}
	if from.After(to) {
		return nil, attendanceerrors.ErrInvalidDateRange
	}

	allEntries, err := s.scheduleRepo.FindAllByPerson(ctx, personID)
	if err != nil {
		return nil, err
	}
	entriesByDay := make(map[int][]schedule.Entry)
	for _, e := range allEntries {
		entriesByDay[e.DayOfWeek] = append(entriesByDay[e.DayOfWeek], e)
	}

	events, err := s.repo.FindByPersonBetween(ctx, personID, from, to)
	if err != nil {
		return nil, err
	}
	eventsByDate := make(map[string][]Event)
	for _, ev := range events {
		key := ev.EventDate.Format("2006-01-02")
		eventsByDate[key] = append(eventsByDate[key], ev)
	}

	var out []Resolved
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dayResolved, err := s.resolveSessions(
			d,
			entriesByDay[int(d.Weekday())],
			eventsByDate[d.Format("2006-01-02")],
		)
		if err != nil {
			return nil, err
		}
		out = append(out, dayResolved...)
	}
	return out, nil
}

func (s *service) resolveSessions(date time.Time, entries []schedule.Entry, events []Event) ([]Resolved, error) {
	eventByEntry := make(map[uuid.UUID]*Event)
	var freeEvents []*Event
	for i := range events {
		ev := &events[i]
		if ev.ScheduleEntryID != nil {
			eventByEntry[*ev.ScheduleEntryID] = ev
		} else {
			freeEvents = append(freeEvents, ev)
		}
	}

	resolved := make([]Resolved, 0, len(entries)+len(freeEvents))
	for i := range entries {
		entry := &entries[i]
		res, err := Resolve(eventByEntry[entry.ID], entry, s.graceMinutes)
		if err != nil {
			return nil, err
		}
		if res.PersonID == uuid.Nil {
			res.PersonID = entry.PersonID
			res.Date = date
		}
		resolved = append(resolved, res)
		delete(eventByEntry, entry.ID)
	}

	// Events pointing at entries outside this day's schedule (the entry
	// was deleted or moved) and general work-hours events resolve
	// without a session window.
	for _, ev := range eventByEntry {
		res, err := Resolve(ev, nil, s.graceMinutes)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, res)
	}
	for _, ev := range freeEvents {
		res, err := Resolve(ev, nil, s.graceMinutes)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, res)
	}
	return resolved, nil
}

func (s *service) GetEvents(ctx context.Context, personID string, from, to time.Time) ([]EventResponse, error) {
	if _, err := uuid.Parse(personID); err != nil {
		return nil, attendanceerrors.ErrInvalidPersonID
	}
	if from.After(to) {
		return nil, attendanceerrors.ErrInvalidDateRange
	}
	rows, err := s.repo.FindByPersonBetween(ctx, personID, from, to)
	if err != nil {
		return nil, err
	}
	res := make([]EventResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func mapToResponse(e Event) EventResponse {
	resp := EventResponse{
		ID:        e.ID.String(),
		PersonID:  e.PersonID.String(),
		EventDate: e.EventDate.Format("2006-01-02"),
		Status:    e.Status,
		Source:    e.Source,
		Notes:     e.Notes,
	}
	if e.ScheduleEntryID != nil {
		v := e.ScheduleEntryID.String()
		resp.ScheduleEntryID = &v
	}
	if e.TimeIn != nil {
		v := e.TimeIn.Format(time.RFC3339)
		resp.TimeIn = &v
	}
	if e.TimeOut != nil {
		v := e.TimeOut.Format(time.RFC3339)
		resp.TimeOut = &v
	}
	return resp
}
