package models

import "time"

// Canonical wire values, as stored and served. The Indonesian vocabulary is
// kept from the stall's existing data set.
const (
	UnitKG     = "KG"
	UnitProduk = "PRODUK"
	UnitLiter  = "LITER"

	CategoryBahan  = "BAHAN"
	CategoryProduk = "PRODUK"
)

// ValidUnit reports whether s is one of the three canonical units.
func ValidUnit(s string) bool {
	return s == UnitKG || s == UnitProduk || s == UnitLiter
}

// ValidCategory reports whether s is one of the two canonical categories.
func ValidCategory(s string) bool {
	return s == CategoryBahan || s == CategoryProduk
}

// StartingStock is the baseline quantity of one item for the currently open
// accounting period.
type StartingStock struct {
	ID        int64     `json:"id"`
	Nama      string    `json:"nama"`
	Jumlah    float64   `json:"jumlah"`
	Satuan    string    `json:"satuan"`
	Kategori  string    `json:"kategori"`
	CreatedAt time.Time `json:"createdAt"`
}

// Remainder is the live current quantity of one item within the open period.
// Same shape as StartingStock; rewritten wholesale at every daily reset.
type Remainder struct {
	ID        int64     `json:"id"`
	Nama      string    `json:"nama"`
	Jumlah    float64   `json:"jumlah"`
	Satuan    string    `json:"satuan"`
	Kategori  string    `json:"kategori"`
	CreatedAt time.Time `json:"createdAt"`
}

// StockInput is the mutable part of a stock or remainder row as accepted from
// clients.
type StockInput struct {
	Nama     string  `json:"nama"`
	Jumlah   float64 `json:"jumlah"`
	Satuan   string  `json:"satuan"`
	Kategori string  `json:"kategori"`
}
