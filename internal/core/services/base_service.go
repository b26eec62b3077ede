package services

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	"github.com/SscSPs/savings_ledger_app/internal/middleware"
)

// ReferenceGenerator produces the opaque unique identifiers handed out by the ledger.
type ReferenceGenerator interface {
	ClientNumber() string
	AccountNumber() string
	TransactionReference() string
}

// BaseService provides common functionality for all services
type BaseService struct {
	clock func() time.Time
}

func newBaseService() BaseService {
	return BaseService{clock: func() time.Time { return time.Now().UTC() }}
}

// Now returns the current instant in UTC.
func (s *BaseService) Now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

// Today returns the current calendar date.
func (s *BaseService) Today() time.Time {
	return domain.DateOf(s.Now())
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// actor names whoever triggered a write, for the audit fields.
func actor(administratorID *string, clientID int64) string {
	if administratorID != nil && *administratorID != "" {
		return "admin:" + *administratorID
	}
	return "client:" + strconv.FormatInt(clientID, 10)
}
