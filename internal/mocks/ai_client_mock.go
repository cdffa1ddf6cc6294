package mocks

import (
	"context"

	"story-weaver/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockAIClient is a mock type for the AIClient type
type MockAIClient struct {
	mock.Mock
}

// GenerateStory provides a mock function with given fields: ctx, prompt
func (_m *MockAIClient) GenerateStory(ctx context.Context, prompt string) (string, service.UsageInfo, error) {
	ret := _m.Called(ctx, prompt)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string) string); ok {
		r0 = rf(ctx, prompt)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(string)
		}
	}

	var r1 service.UsageInfo
	if rf, ok := ret.Get(1).(func(context.Context, string) service.UsageInfo); ok {
		r1 = rf(ctx, prompt)
	} else {
		if ret.Get(1) != nil {
			r1 = ret.Get(1).(service.UsageInfo)
		}
	}

	var r2 error
	if rf, ok := ret.Get(2).(func(context.Context, string) error); ok {
		r2 = rf(ctx, prompt)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// Close provides a mock function
func (_m *MockAIClient) Close() error {
	ret := _m.Called()
	return ret.Error(0)
}

// NewMockAIClient creates a new instance of MockAIClient. It also registers a testing interface on the mock.
// The first argument is typically a *testing.T value.
func NewMockAIClient(t interface {
	mock.TestingT
	Helper()
}) *MockAIClient {
	m := &MockAIClient{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.AIClient = (*MockAIClient)(nil)
