package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/internal/cache"
	"tally/internal/core"
)

const (
	recentDays       = 30
	trendDays        = 365
	comparisonDays   = 90
	overviewRecent   = 5
	aggregationCache = 1000
)

// AggregationService computes the read-side sums and series. Dashboard
// stats and the monthly trend are cached per user until the next write.
type AggregationService struct {
	store Store
	stats *cache.LRUCache[core.DashboardStats]
	trend *cache.LRUCache[[]core.MonthlyAmount]
}

func NewAggregationService(store Store, ttl time.Duration) *AggregationService {
	return &AggregationService{
		store: store,
		stats: cache.NewLRUCache[core.DashboardStats](aggregationCache, ttl),
		trend: cache.NewLRUCache[[]core.MonthlyAmount](aggregationCache, ttl),
	}
}

// PeriodSum totals the user's expenses in p. An empty period is 0.
func (s *AggregationService) PeriodSum(ctx context.Context, userID int64, p core.Period) (core.Money, error) {
	total, err := s.store.SumAmount(ctx, userID, p)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}

// CategoryBreakdown totals by category name.
func (s *AggregationService) CategoryBreakdown(ctx context.Context, userID int64, p core.Period) ([]core.CategoryAmount, error) {
	out, err := s.store.SumByCategory(ctx, userID, p)
	if err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}
	return out, nil
}

// DailySeries totals by date, oldest first.
func (s *AggregationService) DailySeries(ctx context.Context, userID int64, p core.Period) ([]core.DailyAmount, error) {
	out, err := s.store.SumByDate(ctx, userID, p)
	if err != nil {
		return nil, fmt.Errorf("sum by date: %w", err)
	}
	return out, nil
}

// MonthlyTrend totals by calendar month over the trailing year.
func (s *AggregationService) MonthlyTrend(ctx context.Context, userID int64, now time.Time) ([]core.MonthlyAmount, error) {
	key := trendKey(userID)
	if cached, ok := s.trend.Get(key); ok {
		return cached, nil
	}

	out, err := s.store.SumByMonth(ctx, userID, core.TrailingDays(now, trendDays))
	if err != nil {
		return nil, fmt.Errorf("sum by month: %w", err)
	}
	s.trend.Set(key, out)
	return out, nil
}

// CategoryComparison totals and counts by category over the trailing
// 90 days, largest first.
func (s *AggregationService) CategoryComparison(ctx context.Context, userID int64, now time.Time) ([]core.CategoryStats, error) {
	out, err := s.store.CategoryStats(ctx, userID, core.TrailingDays(now, comparisonDays))
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	return out, nil
}

// DashboardStats runs the four dashboard queries concurrently.
func (s *AggregationService) DashboardStats(ctx context.Context, userID int64, now time.Time) (core.DashboardStats, error) {
	key := statsKey(userID)
	if cached, ok := s.stats.Get(key); ok {
		return cached, nil
	}

	month := core.MonthPeriod(now)
	recent := core.TrailingDays(now, recentDays)

	var stats core.DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.MonthlyTotal, err = s.PeriodSum(gctx, userID, month)
		return err
	})
	g.Go(func() (err error) {
		stats.RecentTotal, err = s.PeriodSum(gctx, userID, recent)
		return err
	})
	g.Go(func() (err error) {
		stats.CategoryBreakdown, err = s.CategoryBreakdown(gctx, userID, month)
		return err
	})
	g.Go(func() (err error) {
		stats.DailyExpenses, err = s.DailySeries(gctx, userID, recent)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.DashboardStats{}, fmt.Errorf("dashboard stats: %w", err)
	}

	s.stats.Set(key, stats)
	return stats, nil
}

// CustomRangeTotal sums between two YYYY-MM-DD strings. Both empty means
// all time; one empty or either unparseable yields 0.
func (s *AggregationService) CustomRangeTotal(ctx context.Context, userID int64, from, to string) (core.Money, error) {
	if from == "" && to == "" {
		return s.PeriodSum(ctx, userID, core.AllTime())
	}
	if from == "" || to == "" {
		return core.Money{}, nil
	}
	fromDate, err := core.ParseDate(from)
	if err != nil {
		return core.Money{}, nil
	}
	toDate, err := core.ParseDate(to)
	if err != nil {
		return core.Money{}, nil
	}
	return s.PeriodSum(ctx, userID, core.CustomPeriod(fromDate, toDate))
}

// Overview gathers the dashboard page. breakdown selects the period of the
// category panel.
func (s *AggregationService) Overview(ctx context.Context, userID int64, now time.Time, breakdown core.Period) (core.Overview, error) {
	var ov core.Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ov.Total, err = s.PeriodSum(gctx, userID, core.AllTime())
		return err
	})
	g.Go(func() (err error) {
		ov.RecentTotal, err = s.PeriodSum(gctx, userID, core.TrailingDays(now, recentDays))
		return err
	})
	g.Go(func() (err error) {
		ov.Breakdown, err = s.CategoryBreakdown(gctx, userID, breakdown)
		return err
	})
	g.Go(func() (err error) {
		ov.RecentExpenses, err = s.store.RecentExpenses(gctx, userID, overviewRecent)
		return err
	})
	g.Go(func() (err error) {
		ov.ExpenseCount, err = s.store.CountExpenses(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.Overview{}, fmt.Errorf("overview: %w", err)
	}
	return ov, nil
}

// Invalidate drops the user's cached stats and trend.
func (s *AggregationService) Invalidate(userID int64) {
	s.stats.Delete(statsKey(userID))
	s.trend.Delete(trendKey(userID))
}

// RegisterCaches hands both caches to m for periodic cleanup.
func (s *AggregationService) RegisterCaches(m *cache.Manager) {
	m.Register(s.stats)
	m.Register(s.trend)
}

func (s *AggregationService) CacheStats() cache.Stats {
	return s.stats.Stats().Add(s.trend.Stats())
}

func statsKey(userID int64) string { return "stats:" + strconv.FormatInt(userID, 10) }
func trendKey(userID int64) string { return "trend:" + strconv.FormatInt(userID, 10) }
