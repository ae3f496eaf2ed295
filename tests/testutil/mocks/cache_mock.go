package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/vcodigo/orderlist-api/internal/usecase/group/query"
)

// MockUserGroupsCache is a mock of query.UserGroupsCache
type MockUserGroupsCache struct {
	mock.Mock
}

func NewMockUserGroupsCache(t *testing.T) *MockUserGroupsCache {
	m := &MockUserGroupsCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserGroupsCache) GetUserGroups(ctx context.Context, userID uuid.UUID) ([]*query.GroupWithUserGroup, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*query.GroupWithUserGroup), args.Bool(1), args.Error(2)
}

func (m *MockUserGroupsCache) SetUserGroups(ctx context.Context, userID uuid.UUID, groups []*query.GroupWithUserGroup) error {
	args := m.Called(ctx, userID, groups)
	return args.Error(0)
}

func (m *MockUserGroupsCache) InvalidateUserGroups(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
