package tenant_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
)

// --- MockCompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Create(ctx context.Context, c *entity.Company) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	args := m.Called(ctx, id)
	var c *entity.Company
	if args.Get(0) != nil {
		c = args.Get(0).(*entity.Company)
	}
	return c, args.Error(1)
}

func (m *MockCompanyRepository) Update(ctx context.Context, c *entity.Company) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCompanyRepository) ListChildren(ctx context.Context, parentID string) ([]*entity.Company, error) {
	args := m.Called(ctx, parentID)
	var list []*entity.Company
	if args.Get(0) != nil {
		list = args.Get(0).([]*entity.Company)
	}
	return list, args.Error(1)
}

func (m *MockCompanyRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.Company, error) {
	args := m.Called(ctx, ids)
	var list []*entity.Company
	if args.Get(0) != nil {
		list = args.Get(0).([]*entity.Company)
	}
	return list, args.Error(1)
}

// --- MockAssignmentRepository ---
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Exists(ctx context.Context, companyID, userID string) (bool, error) {
	args := m.Called(ctx, companyID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) ListSubCompanyIDsForUser(ctx context.Context, userID, parentID string) ([]string, error) {
	args := m.Called(ctx, userID, parentID)
	var ids []string
	if args.Get(0) != nil {
		ids = args.Get(0).([]string)
	}
	return ids, args.Error(1)
}

func (m *MockAssignmentRepository) ListUserIDsByCompany(ctx context.Context, companyID string) ([]string, error) {
	args := m.Called(ctx, companyID)
	var ids []string
	if args.Get(0) != nil {
		ids = args.Get(0).([]string)
	}
	return ids, args.Error(1)
}

func (m *MockAssignmentRepository) CreateMany(ctx context.Context, a []entity.CompanySuperUserAssignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssignmentRepository) DeleteByCompany(ctx context.Context, companyID string) error {
	return m.Called(ctx, companyID).Error(0)
}

// --- MockUserRepository (solo lo que usa el Guard) ---
type MockUserRepository struct {
	mock.Mock
	GetByIDAndCompanyFn func(ctx context.Context, id, companyID string) (*entity.User, error)
}

func (m *MockUserRepository) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.User, error) {
	if m.GetByIDAndCompanyFn != nil {
		return m.GetByIDAndCompanyFn(ctx, id, companyID)
	}
	args := m.Called(ctx, id, companyID)
	var u *entity.User
	if args.Get(0) != nil {
		u = args.Get(0).(*entity.User)
	}
	return u, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *entity.User) error { return m.Called(ctx, u).Error(0) }
func (m *MockUserRepository) Update(ctx context.Context, u *entity.User) error { return m.Called(ctx, u).Error(0) }

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error) {
	args := m.Called(ctx, email, companyID)
	return nil, args.Error(1)
}

func (m *MockUserRepository) ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error) {
	args := m.Called(ctx, companyID)
	return nil, args.Error(1)
}

func (m *MockUserRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	args := m.Called(ctx, ids)
	return nil, args.Error(1)
}

func (m *MockUserRepository) ListActiveSuperUsers(ctx context.Context, companyID string) ([]*entity.User, error) {
	args := m.Called(ctx, companyID)
	return nil, args.Error(1)
}

func (m *MockUserRepository) MaxEmployeeNumber(ctx context.Context, companyID string) (int, error) {
	args := m.Called(ctx, companyID)
	return args.Int(0), args.Error(1)
}
