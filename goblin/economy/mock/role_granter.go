package mock

import (
	context "context"
	reflect "reflect"

	platform "github.com/afterclass/commitgoblin/goblin/economy/platform"
	snowflake "github.com/disgoorg/snowflake/v2"
	gomock "go.uber.org/mock/gomock"
)

// MockRoleGranter is a mock of RoleGranter interface.
type MockRoleGranter struct {
	ctrl     *gomock.Controller
	recorder *MockRoleGranterMockRecorder
	isgomock struct{}
}

// MockRoleGranterMockRecorder is the mock recorder for MockRoleGranter.
type MockRoleGranterMockRecorder struct {
	mock *MockRoleGranter
}

// NewMockRoleGranter creates a new mock instance.
func NewMockRoleGranter(ctrl *gomock.Controller) *MockRoleGranter {
	mock := &MockRoleGranter{ctrl: ctrl}
	mock.recorder = &MockRoleGranterMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRoleGranter) EXPECT() *MockRoleGranterMockRecorder {
	return m.recorder
}

// FindRoleByName mocks base method.
func (m *MockRoleGranter) FindRoleByName(ctx context.Context, guildID snowflake.ID, name string) (platform.Role, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindRoleByName", ctx, guildID, name)
	ret0, _ := ret[0].(platform.Role)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// FindRoleByName indicates an expected call of FindRoleByName.
func (mr *MockRoleGranterMockRecorder) FindRoleByName(ctx, guildID, name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindRoleByName", reflect.TypeOf((*MockRoleGranter)(nil).FindRoleByName), ctx, guildID, name)
}

// GrantRole mocks base method.
func (m *MockRoleGranter) GrantRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GrantRole", ctx, guildID, userID, roleID)
	ret0, _ := ret[0].(error)
	return ret0
}

// GrantRole indicates an expected call of GrantRole.
func (mr *MockRoleGranterMockRecorder) GrantRole(ctx, guildID, userID, roleID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GrantRole", reflect.TypeOf((*MockRoleGranter)(nil).GrantRole), ctx, guildID, userID, roleID)
}

// RevokeRole mocks base method.
func (m *MockRoleGranter) RevokeRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RevokeRole", ctx, guildID, userID, roleID)
	ret0, _ := ret[0].(error)
	return ret0
}

// RevokeRole indicates an expected call of RevokeRole.
func (mr *MockRoleGranterMockRecorder) RevokeRole(ctx, guildID, userID, roleID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RevokeRole", reflect.TypeOf((*MockRoleGranter)(nil).RevokeRole), ctx, guildID, userID, roleID)
}
