// Package mocks provides test doubles for the freepik client.
package mocks

import (
	"context"

	freepik "github.com/sells-group/adscout/pkg/freepik"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// GetTask provides a mock function with given fields: ctx, id
func (_m *MockClient) GetTask(ctx context.Context, id string) (*freepik.Task, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for GetTask")
	}

	var r0 *freepik.Task
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*freepik.Task, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *freepik.Task); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*freepik.Task)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ImageToVideo provides a mock function with given fields: ctx, req
func (_m *MockClient) ImageToVideo(ctx context.Context, req freepik.VideoRequest) (*freepik.Task, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for ImageToVideo")
	}

	var r0 *freepik.Task
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, freepik.VideoRequest) (*freepik.Task, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, freepik.VideoRequest) *freepik.Task); ok {
		r0 = rf(ctx, req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*freepik.Task)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, freepik.VideoRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// TextToImage provides a mock function with given fields: ctx, req
func (_m *MockClient) TextToImage(ctx context.Context, req freepik.ImageRequest) (*freepik.Task, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for TextToImage")
	}

	var r0 *freepik.Task
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, freepik.ImageRequest) (*freepik.Task, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, freepik.ImageRequest) *freepik.Task); ok {
		r0 = rf(ctx, req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*freepik.Task)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, freepik.ImageRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockClient creates a new instance of MockClient. It also registers a
// testing interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
