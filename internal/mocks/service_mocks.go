package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shield/internal/domain/service"
)

// PasswordHasher is a mock implementation of service.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// TokenService is a mock implementation of service.TokenService.
type TokenService struct {
	mock.Mock
}

func (m *TokenService) Issue(userID int64) (string, error) {
	args := m.Called(userID)

	return args.String(0), args.Error(1)
}

func (m *TokenService) Verify(token string) (int64, bool) {
	args := m.Called(token)

	return args.Get(0).(int64), args.Bool(1)
}

// PushSender is a mock implementation of service.PushSender.
type PushSender struct {
	mock.Mock
}

func (m *PushSender) Send(ctx context.Context, token, title, body string) bool {
	args := m.Called(ctx, token, title, body)

	return args.Bool(0)
}

// Transcriber is a mock implementation of service.Transcriber.
type Transcriber struct {
	mock.Mock
}

func (m *Transcriber) Transcribe(ctx context.Context, path string) (*service.TranscriptResult, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.TranscriptResult), args.Error(1)
}

func (m *Transcriber) ReloadModel(size string) error {
	args := m.Called(size)

	return args.Error(0)
}

func (m *Transcriber) Model() string {
	args := m.Called()

	return args.String(0)
}

// AlertGenerator is a mock implementation of service.AlertGenerator.
type AlertGenerator struct {
	mock.Mock
}

func (m *AlertGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)

	return args.String(0), args.Error(1)
}
