package mock

import (
	context "context"
	reflect "reflect"

	rewards "github.com/afterclass/commitgoblin/goblin/economy/rewards"
	snowflake "github.com/disgoorg/snowflake/v2"
	gomock "go.uber.org/mock/gomock"
)

// MockNotifier is a mock of Notifier interface.
type MockNotifier struct {
	ctrl     *gomock.Controller
	recorder *MockNotifierMockRecorder
	isgomock struct{}
}

// MockNotifierMockRecorder is the mock recorder for MockNotifier.
type MockNotifierMockRecorder struct {
	mock *MockNotifier
}

// NewMockNotifier creates a new mock instance.
func NewMockNotifier(ctrl *gomock.Controller) *MockNotifier {
	mock := &MockNotifier{ctrl: ctrl}
	mock.recorder = &MockNotifierMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockNotifier) EXPECT() *MockNotifierMockRecorder {
	return m.recorder
}

// Send mocks base method.
func (m *MockNotifier) Send(ctx context.Context, channelID snowflake.ID, text string) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Send", ctx, channelID, text)
	ret0, _ := ret[0].(bool)
	return ret0
}

// Send indicates an expected call of Send.
func (mr *MockNotifierMockRecorder) Send(ctx, channelID, text any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Send", reflect.TypeOf((*MockNotifier)(nil).Send), ctx, channelID, text)
}

// MockGranter is a mock of Granter interface.
type MockGranter struct {
	ctrl     *gomock.Controller
	recorder *MockGranterMockRecorder
	isgomock struct{}
}

// MockGranterMockRecorder is the mock recorder for MockGranter.
type MockGranterMockRecorder struct {
	mock *MockGranter
}

// NewMockGranter creates a new mock instance.
func NewMockGranter(ctrl *gomock.Controller) *MockGranter {
	mock := &MockGranter{ctrl: ctrl}
	mock.recorder = &MockGranterMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockGranter) EXPECT() *MockGranterMockRecorder {
	return m.recorder
}

// Grant mocks base method.
func (m *MockGranter) Grant(ctx context.Context, userID string, minutes int) (rewards.Grant, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Grant", ctx, userID, minutes)
	ret0, _ := ret[0].(rewards.Grant)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Grant indicates an expected call of Grant.
func (mr *MockGranterMockRecorder) Grant(ctx, userID, minutes any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Grant", reflect.TypeOf((*MockGranter)(nil).Grant), ctx, userID, minutes)
}
