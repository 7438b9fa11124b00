package reset

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/robinoyako/sips/internal/domain/models"
)

// Store is the slice of the ledger store the reset engine needs.
type Store interface {
	ListStartingStock(ctx context.Context, kategori string) ([]models.StartingStock, error)
	ListRemainder(ctx context.Context) ([]models.Remainder, error)
	HasReportBetween(ctx context.Context, from, to time.Time) (bool, error)
	ArchiveAndReseed(ctx context.Context, reports []models.HistoricalReport, reseed []models.StockInput) error
}

// Service closes one accounting period: it archives per-item usage into the
// historical ledger and reseeds the live remainder set from the baseline.
type Service struct {
	store  Store
	logger *zap.Logger

	// The stall's local timezone. "One reset per day" means one per local
	// calendar day, so the guard window follows this location while the
	// archived timestamps stay UTC.
	loc *time.Location

	// Serializes overlapping invocations (manual trigger racing the scheduler).
	mu sync.Mutex

	now func() time.Time
}

// NewService wires a new reset engine instance. A nil location defaults to UTC.
func NewService(store Store, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, logger: logger, loc: loc, now: time.Now}
}

// PerformDailyReset archives one HistoricalReport row per StartingStock row
// (remainder defaults to 0 for items with no matching sisa row), clears the
// remainder table, and reseeds it as a copy of the baseline. The baseline
// itself is preserved. Returns the number of archived rows.
//
// A second invocation on the same local calendar day is rejected with
// models.ErrAlreadyReset; an empty baseline is rejected with
// models.ErrEmptyBaseline.
func (s *Service) PerformDailyReset(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batchTime := s.now().UTC()

	local := batchTime.In(s.loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)

	done, err := s.store.HasReportBetween(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return 0, fmt.Errorf("check previous reset: %w", err)
	}
	if done {
		return 0, models.ErrAlreadyReset
	}

	baseline, err := s.store.ListStartingStock(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("load stok awal: %w", err)
	}
	if len(baseline) == 0 {
		return 0, models.ErrEmptyBaseline
	}

	remainders, err := s.store.ListRemainder(ctx)
	if err != nil {
		return 0, fmt.Errorf("load sisa: %w", err)
	}

	remaining := make(map[string]float64, len(remainders))
	for _, r := range remainders {
		remaining[r.Nama] = r.Jumlah
	}

	reports := make([]models.HistoricalReport, 0, len(baseline))
	reseed := make([]models.StockInput, 0, len(baseline))
	for _, item := range baseline {
		sisa := remaining[item.Nama]
		reports = append(reports, models.HistoricalReport{
			Nama:       item.Nama,
			StokAwal:   item.Jumlah,
			Sisa:       sisa,
			Penggunaan: item.Jumlah - sisa,
			Kategori:   item.Kategori,
			CreatedAt:  batchTime,
		})
		reseed = append(reseed, models.StockInput{
			Nama:     item.Nama,
			Jumlah:   item.Jumlah,
			Satuan:   item.Satuan,
			Kategori: item.Kategori,
		})
	}

	if err := s.store.ArchiveAndReseed(ctx, reports, reseed); err != nil {
		return 0, fmt.Errorf("reset gagal: %w", err)
	}

	s.logger.Info("daily reset completed",
		zap.Int("archived", len(reports)),
		zap.Time("batch_time", batchTime))

	return len(reports), nil
}
