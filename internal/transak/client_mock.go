package transak

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetAccessToken(ctx context.Context) (*AccessToken, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AccessToken), args.Error(1)
}

func (m *MockClient) RefreshAccessToken(ctx context.Context, refreshToken string) (*RefreshedToken, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RefreshedToken), args.Error(1)
}

func (m *MockClient) CreateWidgetURL(ctx context.Context, accessToken string, request WidgetURLRequest) (*WidgetURLResult, error) {
	args := m.Called(ctx, accessToken, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*WidgetURLResult), args.Error(1)
}

func (m *MockClient) Environment() Environment {
	return m.Called().Get(0).(Environment)
}

// NewMockClient creates a new MockClient and registers a cleanup to assert its expectations.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ ClientInterface = (*MockClient)(nil)
