package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/segyhp/helbflow/internal/cache"
	"github.com/segyhp/helbflow/internal/config"
	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/repository"
	customError "github.com/segyhp/helbflow/pkg/errors"
	"github.com/segyhp/helbflow/pkg/utils"
)

type DashboardService struct {
	stats  repository.StatsRepository
	cache  cache.Cache
	config *config.Config
	log    *logger.Logger
	now    func() time.Time
}

func NewDashboardService(stats repository.StatsRepository, cache cache.Cache, config *config.Config, log *logger.Logger) *DashboardService {
	return &DashboardService{
		stats:  stats,
		cache:  cache,
		config: config,
		log:    log.WithComponent(logger.ComponentService),
		now:    time.Now,
	}
}

// Stats returns the dashboard headline figures. The four aggregates run concurrently and
// the result is cached for the configured TTL.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var cached domain.DashboardStats
	err := s.cache.Get(ctx, cache.StatsKey(), &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.WarnContext(ctx, "Stats cache read failed", logger.FieldError, err)
	}

	now := s.now().In(s.config.GetLocation())
	start, end := utils.MonthBounds(now.Year(), int(now.Month()), now.Location())

	var (
		stats            domain.DashboardStats
		total, completed int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.stats.CountStudents(gctx)
		stats.TotalStudents = count
		return err
	})
	g.Go(func() error {
		sum, err := s.stats.TotalActiveOutstanding(gctx)
		stats.TotalActiveLoans = sum
		return err
	})
	g.Go(func() error {
		sum, err := s.stats.CompletedDisbursementsBetween(gctx, start, end)
		stats.MonthlyDisbursements = sum
		return err
	})
	g.Go(func() error {
		var err error
		total, completed, err = s.stats.RepaymentCounts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	stats.RepaymentRatePercent = decimal.Zero
	if total > 0 {
		stats.RepaymentRatePercent = utils.Percent(decimal.NewFromInt(completed), decimal.NewFromInt(total)).Round(2)
	}

	if err := s.cache.Set(ctx, cache.StatsKey(), &stats, s.config.GetStatsTTL()); err != nil {
		s.log.WarnContext(ctx, "Stats cache write failed", logger.FieldError, err)
	}

	return &stats, nil
}
