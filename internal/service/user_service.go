package service

import (
	"Userdir/internal/metrics"
	"Userdir/internal/model"
	"Userdir/internal/repo"
	"context"
	"time"

	"go.uber.org/zap"
)

// UserInput carries the four caller-supplied user fields.
type UserInput struct {
	Username  string
	FirstName string
	Email     string
	IsActive  bool
}

type UserService interface {
	CreateUser(ctx context.Context, in UserInput) (*model.User, error)
	GetUser(ctx context.Context, username string) (*model.User, error)
	GetAllUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, username string, in UserInput) (*model.User, error)
	GetStats(ctx context.Context) model.MonitorResponse
}

type userService struct {
	repo    repo.UserRepository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewUserService(repo repo.UserRepository, m *metrics.Metrics, logger *zap.Logger) UserService {
	if m == nil {
		m = metrics.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &userService{
		repo:    repo,
		metrics: m,
		logger:  logger,
	}
}

func (s *userService) CreateUser(ctx context.Context, in UserInput) (user *model.User, err error) {
	defer s.observe("create", time.Now(), &err)
	return s.repo.Create(ctx, in.Username, in.FirstName, in.Email, in.IsActive)
}

func (s *userService) GetUser(ctx context.Context, username string) (user *model.User, err error) {
	defer s.observe("read", time.Now(), &err)
	return s.repo.Read(ctx, username)
}

func (s *userService) GetAllUsers(ctx context.Context) (users []model.User, err error) {
	defer s.observe("read_all", time.Now(), &err)
	return s.repo.ReadAll(ctx)
}

func (s *userService) UpdateUser(ctx context.Context, username string, in UserInput) (user *model.User, err error) {
	defer s.observe("update", time.Now(), &err)
	return s.repo.Update(ctx, username, in.Username, in.FirstName, in.Email, in.IsActive)
}

// GetStats summarises the directory for the monitor endpoint. A store
// failure is reported in the response rather than returned.
func (s *userService) GetStats(ctx context.Context) model.MonitorResponse {
	var err error
	defer s.observe("count", time.Now(), &err)

	total, active, err := s.repo.Count(ctx)
	if err != nil {
		return model.MonitorResponse{Status: "unhealthy", Error: err.Error()}
	}

	status := "healthy"
	if total == 0 {
		status = "idle"
	}

	return model.MonitorResponse{
		Status: status,
		Users: model.UserStats{
			Total:    int(total),
			Active:   int(active),
			Inactive: int(total - active),
		},
	}
}

func (s *userService) observe(operation string, started time.Time, errp *error) {
	err := *errp
	s.metrics.Observe(operation, started, err)
	if err != nil {
		s.logger.Debug("user operation rejected",
			zap.String("operation", operation),
			zap.String("kind", model.KindOf(err).String()),
			zap.String("reason", err.Error()),
		)
	}
}
