package models

import "time"

// HistoricalReport is one immutable archived usage record produced at reset
// time. Penggunaan is always StokAwal - Sisa at the moment of the reset; a
// negative value (remainder above baseline) is recorded as-is. All rows of
// one reset share the same CreatedAt.
type HistoricalReport struct {
	ID         int64     `json:"id"`
	Nama       string    `json:"nama"`
	StokAwal   float64   `json:"stokAwal"`
	Sisa       float64   `json:"sisa"`
	Penggunaan float64   `json:"penggunaan"`
	Kategori   string    `json:"kategori"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReportLine is one row of a daily report as served to clients, with the
// derived usage percentage (two decimals).
type ReportLine struct {
	Nama       string  `json:"nama"`
	StokAwal   float64 `json:"stokAwal"`
	Sisa       float64 `json:"sisa"`
	Penggunaan float64 `json:"penggunaan"`
	Persentase float64 `json:"persentase"`
	Kategori   string  `json:"kategori"`
}
