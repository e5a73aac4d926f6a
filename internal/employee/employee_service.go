package employee

import (
	"context"
	"database/sql"
	"strings"

	employeeerrors "campus-hr/internal/employee/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePersonRequest) (PersonResponse, error)
	GetAll(ctx context.Context) ([]PersonResponse, error)
	GetByID(ctx context.Context, id string) (PersonResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreatePersonRequest) (PersonResponse, error) {
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if !IsValidRole(role) {
		return PersonResponse{}, employeeerrors.ErrInvalidRole
	}

	var position *string
	if req.Position != nil && *req.Position != "" {
		p := strings.ToUpper(strings.TrimSpace(*req.Position))
		if !IsValidPosition(p) {
			return PersonResponse{}, employeeerrors.ErrInvalidPosition
		}
		position = &p
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return PersonResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create person begin tx failed", zap.Error(err))
		return PersonResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p := &Person{
		ID:               uuid.New(),
		FullName:         req.FullName,
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		Password:         string(hashed),
		Role:             role,
		Position:         position,
		EmploymentStatus: StatusActive,
		BaseSalary:       req.BaseSalary,
	}

	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("create person persist failed", zap.Error(err))
		return PersonResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return PersonResponse{}, err
	}

	s.logger.Info("create person success",
		zap.String("person_id", p.ID.String()),
		zap.String("role", p.Role),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]PersonResponse, error) {
	rows, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]PersonResponse, len(rows))
	for i, p := range rows {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PersonResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PersonResponse{}, employeeerrors.ErrInvalidPersonID
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PersonResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func mapToResponse(p Person) PersonResponse {
	return PersonResponse{
		ID:               p.ID.String(),
		FullName:         p.FullName,
		Email:            p.Email,
		Role:             p.Role,
		Position:         p.Position,
		EmploymentStatus: p.EmploymentStatus,
		BaseSalary:       p.BaseSalary,
	}
}
