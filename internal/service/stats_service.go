package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ilaiyarasan2005/Read-Haven/internal/cache"
	"github.com/Ilaiyarasan2005/Read-Haven/internal/repository"
)

// statsCacheKey is where the serialized dashboard stats live in the cache.
const statsCacheKey = "stats:site"

// statsCacheTTL bounds how stale the dashboard may be.
const statsCacheTTL = 30 * time.Second

// StatsService aggregates site-wide counts for the admin dashboard.
// Results are cached briefly since the aggregation scans every table.
type StatsService struct {
	userRepo     repository.UserRepository
	bookRepo     repository.BookRepository
	bookmarkRepo repository.BookmarkRepository
	cache        cache.Cache
	logger       zerolog.Logger
}

// NewStatsService creates a new StatsService. The cache may be nil, in which
// case every call recomputes the counts.
func NewStatsService(
	userRepo repository.UserRepository,
	bookRepo repository.BookRepository,
	bookmarkRepo repository.BookmarkRepository,
	statsCache cache.Cache,
	logger zerolog.Logger,
) *StatsService {
	return &StatsService{
		userRepo:     userRepo,
		bookRepo:     bookRepo,
		bookmarkRepo: bookmarkRepo,
		cache:        statsCache,
		logger:       logger.With().Str("service", "stats").Logger(),
	}
}

// SiteStats contains the aggregate counts shown on the admin dashboard.
type SiteStats struct {
	TotalUsers     int64            `json:"totalUsers"`
	NewUsers30d    int64            `json:"newUsers30d"`
	TotalBooks     int64            `json:"totalBooks"`
	TotalBookmarks int64            `json:"totalBookmarks"`
	BooksByGenre   map[string]int64 `json:"booksByGenre"`
}

// Collect gathers the current aggregate counts, preferring a cached copy.
func (s *StatsService) Collect(ctx context.Context) (*SiteStats, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, statsCacheKey); err == nil {
			var cached SiteStats
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	stats, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, data, statsCacheTTL); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache stats")
			}
		}
	}

	return stats, nil
}

// collect runs the aggregate queries.
func (s *StatsService) collect(ctx context.Context) (*SiteStats, error) {
	stats := &SiteStats{}

	var err error
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to count users")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	since := time.Now().UTC().AddDate(0, 0, -30)
	if stats.NewUsers30d, err = s.userRepo.CountSince(ctx, since); err != nil {
		s.logger.Error().Err(err).Msg("failed to count recent users")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if stats.TotalBooks, err = s.bookRepo.Count(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to count books")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if stats.TotalBookmarks, err = s.bookmarkRepo.Count(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to count bookmarks")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if stats.BooksByGenre, err = s.bookRepo.CountByGenre(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to count books by genre")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return stats, nil
}
