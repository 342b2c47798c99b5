package service

import (
	"context"
	"time"

	"building-chat-be/internal/dto"
	"building-chat-be/pkg/chat/costs"
)

type ICostService interface {
	DailyCosts(ctx context.Context, date string) (*dto.CostPeriodResponse, error)
	MonthlyCosts(ctx context.Context, month string) (*dto.CostPeriodResponse, error)
}

type costService struct {
	monitor *costs.Monitor
}

func NewCostService(monitor *costs.Monitor) ICostService {
	return &costService{monitor: monitor}
}

func (s *costService) DailyCosts(ctx context.Context, date string) (*dto.CostPeriodResponse, error) {
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	summary, err := s.monitor.DailySummary(ctx, date)
	if err != nil {
		return nil, err
	}

	return &dto.CostPeriodResponse{
		Period:       "daily",
		DateKey:      date,
		TotalCost:    summary.TotalCostUSD,
		RequestCount: summary.RequestCount,
		APICalls:     summary.APICalls,
	}, nil
}

func (s *costService) MonthlyCosts(ctx context.Context, month string) (*dto.CostPeriodResponse, error) {
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}

	summary, err := s.monitor.MonthlySummary(ctx, month)
	if err != nil {
		return nil, err
	}

	return &dto.CostPeriodResponse{
		Period:       "monthly",
		DateKey:      month,
		TotalCost:    summary.TotalCostUSD,
		RequestCount: summary.RequestCount,
		APICalls:     summary.APICalls,
	}, nil
}
