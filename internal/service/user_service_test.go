package service

import (
	"Userdir/internal/metrics"
	"Userdir/internal/model"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, username, firstName, email string, isActive bool) (*model.User, error) {
	args := m.Called(ctx, username, firstName, email, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) Read(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) ReadAll(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, username, newUsername, newFirstName, newEmail string, newIsActive bool) (*model.User, error) {
	args := m.Called(ctx, username, newUsername, newFirstName, newEmail, newIsActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func TestCreateUserDelegatesAndCounts(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	m := metrics.New()
	svc := NewUserService(repo, m, zaptest.NewLogger(t))

	want := &model.User{Username: "alex_w", FirstName: "Alex", Email: "alex.w@example.com", IsActive: true}
	repo.On("Create", ctx, "alex_w", "Alex", "alex.w@example.com", true).Return(want, nil).Once()
	repo.On("Create", ctx, "alex_w", "Alex", "alex2@example.com", true).
		Return(nil, model.NewDuplicate(model.DuplicateUsername)).Once()

	got, err := svc.CreateUser(ctx, UserInput{Username: "alex_w", FirstName: "Alex", Email: "alex.w@example.com", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.CreateUser(ctx, UserInput{Username: "alex_w", FirstName: "Alex", Email: "alex2@example.com", IsActive: true})
	assert.ErrorIs(t, err, model.ErrDuplicate)

	repo.AssertExpectations(t)
	assert.Equal(t, 2, mustGatherAndCount(t, m))
}

func TestUpdateUserPassesOriginalUsername(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	svc := NewUserService(repo, nil, nil)

	repo.On("Update", ctx, "alex_w", "alex_x", "Alex", "a@example.com", false).
		Return(&model.User{Username: "alex_x"}, nil).Once()

	got, err := svc.UpdateUser(ctx, "alex_w", UserInput{Username: "alex_x", FirstName: "Alex", Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "alex_x", got.Username)
	repo.AssertExpectations(t)
}

func TestGetStats(t *testing.T) {
	ctx := context.Background()

	t.Run("counts active users", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("Count", ctx).Return(int64(3), int64(2), nil).Once()

		stats := NewUserService(repo, nil, nil).GetStats(ctx)
		assert.Equal(t, "healthy", stats.Status)
		assert.Equal(t, model.UserStats{Total: 3, Active: 2, Inactive: 1}, stats.Users)
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "ReadAll", mock.Anything)
	})

	t.Run("empty directory is idle", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("Count", ctx).Return(int64(0), int64(0), nil)

		stats := NewUserService(repo, nil, nil).GetStats(ctx)
		assert.Equal(t, "idle", stats.Status)
		assert.Zero(t, stats.Users.Total)
	})

	t.Run("store failure is unhealthy", func(t *testing.T) {
		repo := new(mockUserRepository)
		m := metrics.New()
		repo.On("Count", ctx).Return(int64(0), int64(0), model.NewStoreError("Failed to count users"))

		stats := NewUserService(repo, m, zaptest.NewLogger(t)).GetStats(ctx)
		assert.Equal(t, "unhealthy", stats.Status)
		assert.Equal(t, "Failed to count users", stats.Error)
		assert.Equal(t, 1, mustGatherAndCount(t, m))
	})
}

func mustGatherAndCount(t *testing.T, m *metrics.Metrics) int {
	t.Helper()
	n, err := testutil.GatherAndCount(m.Registry(), "userdir_user_operations_total")
	require.NoError(t, err)
	return n
}
