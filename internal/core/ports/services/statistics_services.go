package services

import (
	"context"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
)

// StatisticsSvc exposes the administrative overview.
type StatisticsSvc interface {
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
}
