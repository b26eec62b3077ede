package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger_app/internal/utils/accounting"
)

type statisticsService struct {
	BaseService
	repo portsrepo.StatisticsReader
}

// NewStatisticsService creates the back-office overview service.
func NewStatisticsService(repo portsrepo.StatisticsReader) portssvc.StatisticsSvc {
	return &statisticsService{BaseService: newBaseService(), repo: repo}
}

func (s *statisticsService) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	stats, err := s.repo.GetStatistics(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute statistics")
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	stats.AverageBalance = accounting.AverageBalance(stats.TotalBalance, stats.AccountCount)
	if stats.AccountsByStatus == nil {
		stats.AccountsByStatus = make(map[domain.AccountStatus]int64)
	}
	for _, st := range domain.AccountStatuses() {
		if _, ok := stats.AccountsByStatus[st]; !ok {
			stats.AccountsByStatus[st] = 0
		}
	}
	return stats, nil
}
