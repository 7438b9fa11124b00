package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/robinoyako/sips/internal/domain/models"
)

const dateLayout = "2006-01-02"

// Store is the slice of the ledger store the aggregator reads from.
type Store interface {
	ListReportTimestamps(ctx context.Context) ([]time.Time, error)
	ListReportsBetween(ctx context.Context, from, to time.Time) ([]models.HistoricalReport, error)
}

// Service regroups the historical ledger by calendar day for reporting.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a new report aggregator instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// ListReportDates returns every distinct UTC calendar date with at least one
// archived row, most recent first. Rows of one reset share a timestamp, but
// multiple batches on one day still collapse to a single date.
func (s *Service) ListReportDates(ctx context.Context) ([]string, error) {
	timestamps, err := s.store.ListReportTimestamps(ctx)
	if err != nil {
		return nil, fmt.Errorf("load report timestamps: %w", err)
	}

	seen := make(map[string]struct{}, len(timestamps))
	dates := make([]string, 0, len(timestamps))
	for _, ts := range timestamps {
		d := ts.UTC().Format(dateLayout)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	return dates, nil
}

// GetReportForDate returns the report lines for one UTC calendar day, ordered
// by item name, with the derived usage percentage. Returns
// models.ErrInvalidDate when the input is not a valid YYYY-MM-DD date.
func (s *Service) GetReportForDate(ctx context.Context, date string) ([]models.ReportLine, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return nil, models.ErrInvalidDate
	}

	rows, err := s.store.ListReportsBetween(ctx, day, day.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("load report for %s: %w", date, err)
	}

	lines := make([]models.ReportLine, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, models.ReportLine{
			Nama:       r.Nama,
			StokAwal:   r.StokAwal,
			Sisa:       r.Sisa,
			Penggunaan: r.Penggunaan,
			Persentase: UsagePercent(r.Penggunaan, r.StokAwal),
			Kategori:   r.Kategori,
		})
	}
	return lines, nil
}

// UsagePercent computes used/starting as a percentage rounded to exactly two
// decimals; a non-positive baseline yields 0.
func UsagePercent(used, starting float64) float64 {
	if starting <= 0 {
		return 0
	}
	return math.Round(used/starting*10000) / 100
}
