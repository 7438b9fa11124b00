package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/robinoyako/sips/internal/domain/models"
)

// ListStartingStock returns all baseline rows, newest first, optionally
// filtered by kategori.
func (s *Store) ListStartingStock(ctx context.Context, kategori string) ([]models.StartingStock, error) {
	query := `SELECT id, nama, jumlah, satuan, kategori, created_at FROM stok_awal`
	args := []any{}
	if kategori != "" {
		query += ` WHERE kategori = $1`
		args = append(args, kategori)
	}
	query += ` ORDER BY id DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stok_awal: %w", err)
	}
	defer rows.Close()

	var out []models.StartingStock
	for rows.Next() {
		var st models.StartingStock
		if err := rows.Scan(&st.ID, &st.Nama, &st.Jumlah, &st.Satuan, &st.Kategori, &st.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// GetStartingStock returns one row by id, or models.ErrNotFound.
func (s *Store) GetStartingStock(ctx context.Context, id int64) (*models.StartingStock, error) {
	var st models.StartingStock
	err := s.pool.QueryRow(ctx, `
		SELECT id, nama, jumlah, satuan, kategori, created_at
		FROM stok_awal WHERE id = $1
	`, id).Scan(&st.ID, &st.Nama, &st.Jumlah, &st.Satuan, &st.Kategori, &st.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get stok_awal %d: %w", id, err)
	}
	return &st, nil
}

// CreateStartingStock inserts a baseline row and returns it with its id.
func (s *Store) CreateStartingStock(ctx context.Context, in models.StockInput) (*models.StartingStock, error) {
	var st models.StartingStock
	err := s.pool.QueryRow(ctx, `
		INSERT INTO stok_awal (nama, jumlah, satuan, kategori)
		VALUES ($1, $2, $3, $4)
		RETURNING id, nama, jumlah, satuan, kategori, created_at
	`, in.Nama, in.Jumlah, in.Satuan, in.Kategori).
		Scan(&st.ID, &st.Nama, &st.Jumlah, &st.Satuan, &st.Kategori, &st.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create stok_awal: %w", err)
	}
	return &st, nil
}

// UpdateStartingStock rewrites a baseline row, or returns models.ErrNotFound.
func (s *Store) UpdateStartingStock(ctx context.Context, id int64, in models.StockInput) (*models.StartingStock, error) {
	var st models.StartingStock
	err := s.pool.QueryRow(ctx, `
		UPDATE stok_awal SET nama = $2, jumlah = $3, satuan = $4, kategori = $5
		WHERE id = $1
		RETURNING id, nama, jumlah, satuan, kategori, created_at
	`, id, in.Nama, in.Jumlah, in.Satuan, in.Kategori).
		Scan(&st.ID, &st.Nama, &st.Jumlah, &st.Satuan, &st.Kategori, &st.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update stok_awal %d: %w", id, err)
	}
	return &st, nil
}

// DeleteStartingStock removes a baseline row, or returns models.ErrNotFound.
func (s *Store) DeleteStartingStock(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM stok_awal WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stok_awal %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ListStartingStockNames returns every baseline item name, for duplicate
// detection during ingestion.
func (s *Store) ListStartingStockNames(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT nama FROM stok_awal`)
	if err != nil {
		return nil, fmt.Errorf("list stok_awal names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
