package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

var ErrReportNotFound = errors.New("report not found")

const reportKeyPrefix = "report:"

type ReportRepository interface {
	Save(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
}

type dbReport struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportRepository - reports expire after ttl, 0 keeps them forever.
func NewReportRepository(client *redis.Client, ttl time.Duration) ReportRepository {
	return &dbReport{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbReport) Save(ctx context.Context, report *entity.Report) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("could not marshal report: %w", err)
	}

	if err = that.client.Set(ctx, reportKeyPrefix+report.ID, reportJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set report: %w", err)
	}

	return nil
}

func (that *dbReport) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	response, err := that.client.Get(ctx, reportKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrReportNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get report by id: %w", err)
	}

	var report entity.Report
	if err = json.Unmarshal([]byte(response), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &report, nil
}
