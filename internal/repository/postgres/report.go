package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/robinoyako/sips/internal/domain/models"
)

// ArchiveAndReseed performs the close-of-period unit in one transaction:
// append the historical rows, wipe sisa, and re-insert sisa as a copy of the
// current stok_awal. Any failure rolls the whole unit back.
func (s *Store) ArchiveAndReseed(ctx context.Context, reports []models.HistoricalReport, reseed []models.StockInput) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reset tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, rep := range reports {
		if _, err := tx.Exec(ctx, `
			INSERT INTO laporan_harian (nama, stok_awal, sisa, penggunaan, kategori, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, rep.Nama, rep.StokAwal, rep.Sisa, rep.Penggunaan, rep.Kategori, rep.CreatedAt); err != nil {
			return fmt.Errorf("insert laporan_harian: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sisa`); err != nil {
		return fmt.Errorf("clear sisa: %w", err)
	}

	for _, in := range reseed {
		if _, err := tx.Exec(ctx, `
			INSERT INTO sisa (nama, jumlah, satuan, kategori)
			VALUES ($1, $2, $3, $4)
		`, in.Nama, in.Jumlah, in.Satuan, in.Kategori); err != nil {
			return fmt.Errorf("reseed sisa: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// HasReportBetween reports whether any archived row falls inside [from, to).
func (s *Store) HasReportBetween(ctx context.Context, from, to time.Time) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM laporan_harian WHERE created_at >= $1 AND created_at < $2
		)
	`, from, to).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check laporan_harian range: %w", err)
	}
	return exists, nil
}

// ListReportTimestamps returns the distinct reset timestamps, newest first.
// Many rows share each timestamp; the aggregator collapses them to dates.
func (s *Store) ListReportTimestamps(ctx context.Context) ([]time.Time, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT created_at FROM laporan_harian ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list laporan_harian timestamps: %w", err)
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}

// ListReportsBetween returns archived rows with created_at inside [from, to),
// ordered by item name.
func (s *Store) ListReportsBetween(ctx context.Context, from, to time.Time) ([]models.HistoricalReport, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, nama, stok_awal, sisa, penggunaan, kategori, created_at
		FROM laporan_harian
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY nama ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list laporan_harian: %w", err)
	}
	defer rows.Close()

	var out []models.HistoricalReport
	for rows.Next() {
		var rep models.HistoricalReport
		if err := rows.Scan(&rep.ID, &rep.Nama, &rep.StokAwal, &rep.Sisa, &rep.Penggunaan, &rep.Kategori, &rep.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}
