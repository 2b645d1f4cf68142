package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"taxidash/internal/domain"
	"taxidash/internal/engine"
	"taxidash/internal/redis"
	"taxidash/internal/repository"
)

const (
	defaultMaxPageSize = 100
	maxZonePrecision   = 12
)

// DashboardConfig holds the tunables of the dashboard service.
type DashboardConfig struct {
	PageSize          int
	MaxPageSize       int
	OutlierMultiplier float64
	ZonePrecision     int
	ZoneLimit         int
}

// DefaultDashboardConfig returns the default dashboard configuration.
func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		PageSize:          domain.DefaultPageSize,
		MaxPageSize:       defaultMaxPageSize,
		OutlierMultiplier: engine.DefaultOutlierMultiplier,
		ZonePrecision:     engine.DefaultZonePrecision,
		ZoneLimit:         engine.DefaultZoneLimit,
	}
}

// DashboardService serves trip views computed by the engine.
type DashboardService struct {
	tripRepo repository.TripRepository
	cache    redis.ViewCacheInterface
	cfg      DashboardConfig
	logger   *zap.Logger
}

// NewDashboardService creates a new DashboardService. cache may be nil.
func NewDashboardService(
	tripRepo repository.TripRepository,
	cache redis.ViewCacheInterface,
	cfg DashboardConfig,
	logger *zap.Logger,
) *DashboardService {
	defaults := DefaultDashboardConfig()
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaults.PageSize
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = defaults.MaxPageSize
	}
	if cfg.OutlierMultiplier <= 0 {
		cfg.OutlierMultiplier = defaults.OutlierMultiplier
	}
	if cfg.ZonePrecision <= 0 {
		cfg.ZonePrecision = defaults.ZonePrecision
	}
	if cfg.ZoneLimit <= 0 {
		cfg.ZoneLimit = defaults.ZoneLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DashboardService{
		tripRepo: tripRepo,
		cache:    cache,
		cfg:      cfg,
		logger:   logger,
	}
}

// Normalize validates a view request and fills in defaults.
func (s *DashboardService) Normalize(req domain.ViewRequest) (domain.ViewRequest, error) {
	filter, err := normalizeFilter(req.Filter)
	if err != nil {
		return req, err
	}
	req.Filter = filter

	if req.SortBy == "" {
		req.SortBy = domain.SortByPickupTime
	}
	if !req.SortBy.IsValid() {
		return req, fmt.Errorf("%w: %q", ErrInvalidSortField, req.SortBy)
	}

	if req.Page.PageSize == 0 {
		req.Page.PageSize = s.cfg.PageSize
	}
	if req.Page.PageSize < 0 || req.Page.PageSize > s.cfg.MaxPageSize {
		return req, fmt.Errorf("%w: page size must be between 1 and %d", ErrInvalidPage, s.cfg.MaxPageSize)
	}
	if req.Page.PageNumber == 0 {
		req.Page.PageNumber = 1
	}
	if req.Page.PageNumber < 0 {
		return req, fmt.Errorf("%w: page number must be positive", ErrInvalidPage)
	}

	return req, nil
}

// normalizeFilter validates filter criteria. Dates must be YYYY-MM-DD and
// the payment type must be "all" or a known type.
func normalizeFilter(f domain.FilterCriteria) (domain.FilterCriteria, error) {
	for _, d := range []string{f.StartDate, f.EndDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(domain.DateLayout, d); err != nil {
			return f, fmt.Errorf("%w: %q", ErrInvalidDate, d)
		}
	}

	if math.IsNaN(f.MaxDistance) || math.IsInf(f.MaxDistance, 0) || f.MaxDistance < 0 {
		return f, fmt.Errorf("%w: %v", ErrInvalidDistance, f.MaxDistance)
	}

	if f.PaymentType == "" {
		f.PaymentType = domain.PaymentTypeAll
	} else {
		f.PaymentType = domain.ParsePaymentType(string(f.PaymentType))
	}
	if f.PaymentType != domain.PaymentTypeAll && !f.PaymentType.IsKnown() {
		return f, fmt.Errorf("%w: %q", ErrInvalidPaymentType, f.PaymentType)
	}

	return f, nil
}

// View computes every dashboard view for the request.
func (s *DashboardService) View(ctx context.Context, req domain.ViewRequest) (*domain.DashboardView, error) {
	req, err := s.Normalize(req)
	if err != nil {
		return nil, err
	}

	// Read once: the view is stored under the version it was computed from.
	useCache := s.cache != nil
	var version int64
	if useCache {
		version, err = s.cache.Version(ctx)
		if err != nil {
			s.logger.Warn("view cache version read failed", zap.Error(err))
			useCache = false
		}
	}

	if useCache {
		cached, err := s.cache.GetView(ctx, version, req)
		if err != nil {
			s.logger.Warn("view cache read failed", zap.Error(err))
		} else if cached != nil {
			viewCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		}
		viewCacheLookups.WithLabelValues("miss").Inc()
	}

	trips, err := s.tripRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load trips: %w", err)
	}

	start := time.Now()
	view := engine.Compute(trips, req)
	viewComputeDuration.Observe(time.Since(start).Seconds())

	if useCache {
		if err := s.cache.SetView(ctx, version, &view); err != nil {
			s.logger.Warn("view cache write failed", zap.Error(err))
		}
	}

	return &view, nil
}

// Trip retrieves a single trip.
func (s *DashboardService) Trip(ctx context.Context, id int64) (*domain.TripRecord, error) {
	if id <= 0 {
		return nil, ErrInvalidTripID
	}
	return s.tripRepo.GetByID(ctx, id)
}

// Outliers returns the filtered trips whose fare per mile lies more than
// multiplier standard deviations from the mean. A zero multiplier uses the
// configured default.
func (s *DashboardService) Outliers(ctx context.Context, filter domain.FilterCriteria, multiplier float64) ([]domain.Outlier, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	if multiplier == 0 {
		multiplier = s.cfg.OutlierMultiplier
	}
	if math.IsNaN(multiplier) || math.IsInf(multiplier, 0) || multiplier < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMultiplier, multiplier)
	}

	trips, err := s.tripRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load trips: %w", err)
	}

	return engine.FarePerMileOutliers(engine.Filter(trips, filter), multiplier), nil
}

// Zones returns the busiest pickup cells among the filtered trips.
// Zero precision or limit use the configured defaults.
func (s *DashboardService) Zones(ctx context.Context, filter domain.FilterCriteria, precision, limit int) ([]domain.ZoneCount, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	if precision == 0 {
		precision = s.cfg.ZonePrecision
	}
	if precision < 1 || precision > maxZonePrecision {
		return nil, fmt.Errorf("%w: must be between 1 and %d", ErrInvalidPrecision, maxZonePrecision)
	}
	if limit == 0 {
		limit = s.cfg.ZoneLimit
	}
	if limit < 0 {
		return nil, ErrInvalidLimit
	}

	trips, err := s.tripRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load trips: %w", err)
	}

	return engine.TopPickupZones(engine.Filter(trips, filter), precision, limit), nil
}
