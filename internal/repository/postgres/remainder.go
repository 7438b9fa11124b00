package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/robinoyako/sips/internal/domain/models"
)

// ListRemainder returns all live remainder rows, newest first.
func (s *Store) ListRemainder(ctx context.Context) ([]models.Remainder, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, nama, jumlah, satuan, kategori, created_at
		FROM sisa ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sisa: %w", err)
	}
	defer rows.Close()

	var out []models.Remainder
	for rows.Next() {
		var r models.Remainder
		if err := rows.Scan(&r.ID, &r.Nama, &r.Jumlah, &r.Satuan, &r.Kategori, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CreateRemainder inserts a remainder row and returns it with its id.
func (s *Store) CreateRemainder(ctx context.Context, in models.StockInput) (*models.Remainder, error) {
	var r models.Remainder
	err := s.pool.QueryRow(ctx, `
		INSERT INTO sisa (nama, jumlah, satuan, kategori)
		VALUES ($1, $2, $3, $4)
		RETURNING id, nama, jumlah, satuan, kategori, created_at
	`, in.Nama, in.Jumlah, in.Satuan, in.Kategori).
		Scan(&r.ID, &r.Nama, &r.Jumlah, &r.Satuan, &r.Kategori, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create sisa: %w", err)
	}
	return &r, nil
}

// UpdateRemainder rewrites a remainder row, or returns models.ErrNotFound.
func (s *Store) UpdateRemainder(ctx context.Context, id int64, in models.StockInput) (*models.Remainder, error) {
	var r models.Remainder
	err := s.pool.QueryRow(ctx, `
		UPDATE sisa SET nama = $2, jumlah = $3, satuan = $4, kategori = $5
		WHERE id = $1
		RETURNING id, nama, jumlah, satuan, kategori, created_at
	`, id, in.Nama, in.Jumlah, in.Satuan, in.Kategori).
		Scan(&r.ID, &r.Nama, &r.Jumlah, &r.Satuan, &r.Kategori, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update sisa %d: %w", id, err)
	}
	return &r, nil
}

// DeleteRemainder removes a remainder row, or returns models.ErrNotFound.
func (s *Store) DeleteRemainder(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sisa WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sisa %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
