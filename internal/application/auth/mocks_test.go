package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
)

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) user(args mock.Arguments) (*entity.User, error) {
	var u *entity.User
	if args.Get(0) != nil {
		u = args.Get(0).(*entity.User)
	}
	return u, args.Error(1)
}

func (m *MockUserRepository) users(args mock.Arguments) ([]*entity.User, error) {
	var list []*entity.User
	if args.Get(0) != nil {
		list = args.Get(0).([]*entity.User)
	}
	return list, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserRepository) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.User, error) {
	return m.user(m.Called(ctx, id, companyID))
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *MockUserRepository) GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error) {
	return m.user(m.Called(ctx, email, companyID))
}

func (m *MockUserRepository) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error) {
	return m.users(m.Called(ctx, companyID))
}

func (m *MockUserRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	return m.users(m.Called(ctx, ids))
}

func (m *MockUserRepository) ListActiveSuperUsers(ctx context.Context, companyID string) ([]*entity.User, error) {
	return m.users(m.Called(ctx, companyID))
}

func (m *MockUserRepository) MaxEmployeeNumber(ctx context.Context, companyID string) (int, error) {
	args := m.Called(ctx, companyID)
	return args.Int(0), args.Error(1)
}

// --- MockRevokedTokenRepository ---
type MockRevokedTokenRepository struct {
	mock.Mock
}

func (m *MockRevokedTokenRepository) Revoke(ctx context.Context, t *entity.RevokedToken) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockRevokedTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

// --- MockNotifier ---
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}
