package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taxidash/internal/domain"
	"taxidash/internal/ingest"
	"taxidash/internal/redis"
	"taxidash/internal/repository"
)

// Import sources, used as metric labels.
const (
	SourceCSV     = "csv"
	SourceJSON    = "json"
	SourceRecords = "records"
)

// Ensure ImportService can feed the queue consumer.
var _ ingest.Importer = (*ImportService)(nil)

// ImportService validates and stores incoming trips.
type ImportService struct {
	tripRepo  repository.TripRepository
	cache     redis.ViewCacheInterface
	lockStore redis.LockStoreInterface
	location  *time.Location
	logger    *zap.Logger
}

// NewImportService creates a new ImportService. cache and lockStore may be nil.
func NewImportService(
	tripRepo repository.TripRepository,
	cache redis.ViewCacheInterface,
	lockStore redis.LockStoreInterface,
	location *time.Location,
	logger *zap.Logger,
) *ImportService {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{
		tripRepo:  tripRepo,
		cache:     cache,
		lockStore: lockStore,
		location:  location,
		logger:    logger,
	}
}

// ImportCSV parses, cleans and stores a CSV document.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader) (*domain.ImportResult, error) {
	parsed, err := ingest.NewCSVParser(s.location).Parse(r)
	if err != nil {
		return nil, err
	}

	result := newImportResult(parsed.Rows, parsed.Skipped, parsed.Errors)
	return s.store(ctx, SourceCSV, parsed.Trips, result)
}

// ImportJSON stores a JSON object or array of trip payloads.
func (s *ImportService) ImportJSON(ctx context.Context, body []byte) (*domain.ImportResult, error) {
	payloads, err := ingest.DecodePayloads(body)
	if err != nil {
		return nil, err
	}

	trips, errs := ingest.ConvertPayloads(payloads, s.location)
	result := newImportResult(len(payloads), len(errs), errorStrings(errs))
	return s.store(ctx, SourceJSON, trips, result)
}

// ImportRecords validates and stores already parsed trips.
func (s *ImportService) ImportRecords(ctx context.Context, trips []domain.TripRecord) (*domain.ImportResult, error) {
	valid := make([]domain.TripRecord, 0, len(trips))
	var errs []error
	for i, trip := range trips {
		if err := ingest.Validate(trip); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		valid = append(valid, trip)
	}

	result := newImportResult(len(trips), len(errs), errorStrings(errs))
	return s.store(ctx, SourceRecords, valid, result)
}

func (s *ImportService) store(ctx context.Context, source string, trips []domain.TripRecord, result *domain.ImportResult) (*domain.ImportResult, error) {
	tripsSkipped.WithLabelValues(source).Add(float64(result.Skipped))
	if len(trips) == 0 {
		return nil, ErrNoValidTrips
	}

	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireImportLock(ctx, redis.DefaultImportLockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire import lock: %w", err)
		}
		if !locked {
			return nil, ErrImportInProgress
		}
		defer func() {
			if err := s.lockStore.ReleaseImportLock(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("failed to release import lock", zap.Error(err))
			}
		}()
	}

	stored, err := s.tripRepo.CreateBatch(ctx, trips)
	if err != nil {
		return nil, fmt.Errorf("store trips: %w", err)
	}

	duplicates := len(trips) - stored
	result.Imported = stored
	result.Skipped += duplicates
	tripsImported.WithLabelValues(source).Add(float64(stored))
	tripsSkipped.WithLabelValues(source).Add(float64(duplicates))

	if stored > 0 && s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("view cache invalidation failed", zap.Error(err))
		}
	}

	s.logger.Info("trips imported",
		zap.String("batch_id", result.BatchID),
		zap.String("source", source),
		zap.Int("received", result.Received),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

func newImportResult(received, skipped int, errs []string) *domain.ImportResult {
	if errs == nil {
		errs = []string{}
	}
	return &domain.ImportResult{
		BatchID:  uuid.New().String(),
		Received: received,
		Skipped:  skipped,
		Errors:   errs,
	}
}

func errorStrings(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}
