package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/vcodigo/orderlist-api/internal/domain/entity"
	"github.com/vcodigo/orderlist-api/internal/domain/valueobject"
)

// MockGroupRepository is a mock of repository.GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func NewMockGroupRepository(t *testing.T) *MockGroupRepository {
	m := &MockGroupRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockGroupRepository) Create(ctx context.Context, group *entity.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Group), args.Error(1)
}

func (m *MockGroupRepository) Update(ctx context.Context, group *entity.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGroupRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Group, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Group), args.Error(1)
}

func (m *MockGroupRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockGroupRepository) FindEmptyGroupIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockUserGroupRepository is a mock of repository.UserGroupRepository
type MockUserGroupRepository struct {
	mock.Mock
}

func NewMockUserGroupRepository(t *testing.T) *MockUserGroupRepository {
	m := &MockUserGroupRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserGroupRepository) Create(ctx context.Context, userGroup *entity.UserGroup) error {
	args := m.Called(ctx, userGroup)
	return args.Error(0)
}

func (m *MockUserGroupRepository) FindByGroupAndUser(ctx context.Context, groupID, userID uuid.UUID) (*entity.UserGroup, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserGroup), args.Error(1)
}

func (m *MockUserGroupRepository) Delete(ctx context.Context, groupID, userID uuid.UUID) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *MockUserGroupRepository) FindPageByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.UserGroup, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.UserGroup), args.Error(1)
}

func (m *MockUserGroupRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.UserGroup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.UserGroup), args.Error(1)
}

func (m *MockUserGroupRepository) FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]*entity.UserGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.UserGroup), args.Error(1)
}

func (m *MockUserGroupRepository) CountByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, groupIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int), args.Error(1)
}

func (m *MockUserGroupRepository) FindFirstByRole(ctx context.Context, groupIDs []uuid.UUID, role valueobject.GroupRole) ([]*entity.UserGroup, error) {
	args := m.Called(ctx, groupIDs, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.UserGroup), args.Error(1)
}

func (m *MockUserGroupRepository) DeleteBatch(ctx context.Context, userGroups []*entity.UserGroup) error {
	args := m.Called(ctx, userGroups)
	return args.Error(0)
}

func (m *MockUserGroupRepository) SaveBatch(ctx context.Context, userGroups []*entity.UserGroup) error {
	args := m.Called(ctx, userGroups)
	return args.Error(0)
}

func (m *MockUserGroupRepository) DeleteByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) error {
	args := m.Called(ctx, groupIDs)
	return args.Error(0)
}

func (m *MockUserGroupRepository) CountByGroupID(ctx context.Context, groupID uuid.UUID) (int, error) {
	args := m.Called(ctx, groupID)
	return args.Int(0), args.Error(1)
}
