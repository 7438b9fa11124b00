package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/robinoyako/sips/internal/domain/models"
)

// Store is the slice of the ledger store the normalizer feeds.
type Store interface {
	ListStartingStockNames(ctx context.Context) ([]string, error)
	CreateStartingStock(ctx context.Context, in models.StockInput) (*models.StartingStock, error)
}

// RawRow is one tabular input row before normalization. All fields are
// free text as found in the file.
type RawRow struct {
	Nama     string
	Jumlah   string
	Satuan   string
	Kategori string
}

// Result summarizes one ingestion batch.
type Result struct {
	TotalFiles       int `json:"totalFiles"`
	Saved            int `json:"savedRows"`
	SkippedInvalid   int `json:"skippedInvalid"`
	SkippedDuplicate int `json:"skippedDuplicate"`
}

// Service parses tabular uploads, normalizes the unit/category vocabulary,
// validates rows, and deduplicates against existing baseline names before
// inserting new StartingStock rows.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a new ingestion normalizer instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// IngestFiles parses and ingests each uploaded file in order. Rows are
// processed sequentially so that duplicate detection sees rows accepted
// earlier in the same batch.
func (s *Service) IngestFiles(ctx context.Context, files [][]byte) (Result, error) {
	res := Result{TotalFiles: len(files)}

	existing, err := s.store.ListStartingStockNames(ctx)
	if err != nil {
		return res, fmt.Errorf("load existing names: %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, n := range existing {
		seen[strings.ToLower(n)] = struct{}{}
	}

	for _, file := range files {
		rows, err := ParseFile(file)
		if err != nil {
			return res, fmt.Errorf("parse upload: %w", err)
		}

		for _, raw := range rows {
			in, ok := Normalize(raw)
			if !ok {
				s.logger.Debug("skip invalid row",
					zap.String("nama", raw.Nama),
					zap.String("jumlah", raw.Jumlah),
					zap.String("satuan", raw.Satuan),
					zap.String("kategori", raw.Kategori))
				res.SkippedInvalid++
				continue
			}

			key := strings.ToLower(in.Nama)
			if _, dup := seen[key]; dup {
				res.SkippedDuplicate++
				continue
			}

			if _, err := s.store.CreateStartingStock(ctx, in); err != nil {
				return res, fmt.Errorf("insert %s: %w", in.Nama, err)
			}
			seen[key] = struct{}{}
			res.Saved++
		}
	}

	return res, nil
}

// ParseFile reads one CSV or TSV payload with a header row into raw rows.
// The delimiter is sniffed: any tab character makes the file a TSV.
func ParseFile(data []byte) ([]RawRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	if bytes.ContainsRune(data, '\t') {
		reader.Comma = '\t'
	}
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	field := func(record []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, RawRow{
			Nama:     field(record, "nama"),
			Jumlah:   field(record, "jumlah"),
			Satuan:   field(record, "satuan"),
			Kategori: field(record, "kategori"),
		})
	}
	return rows, nil
}

// Normalize trims and canonicalizes one raw row. The second return value is
// false when the row fails validation: empty name, non-positive quantity, or
// a unit/category outside the canonical vocabulary.
func Normalize(raw RawRow) (models.StockInput, bool) {
	nama := strings.TrimSpace(raw.Nama)
	jumlah, err := strconv.ParseFloat(strings.TrimSpace(raw.Jumlah), 64)
	satuan := NormalizeUnit(raw.Satuan)
	kategori := strings.ToUpper(strings.TrimSpace(raw.Kategori))

	if nama == "" || err != nil || jumlah <= 0 ||
		!models.ValidUnit(satuan) || !models.ValidCategory(kategori) {
		return models.StockInput{}, false
	}

	return models.StockInput{
		Nama:     nama,
		Jumlah:   jumlah,
		Satuan:   satuan,
		Kategori: kategori,
	}, true
}

// NormalizeUnit maps the unit spellings seen in supplier sheets onto the
// canonical three: KG/KILO/KILOGRAM -> KG, PRODUK/PRODUCT/PCS -> PRODUK,
// LITER/LTR -> LITER. Unknown spellings pass through uppercased and fail
// validation later.
func NormalizeUnit(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "KG", "KILO", "KILOGRAM":
		return models.UnitKG
	case "PRODUK", "PRODUCT", "PCS":
		return models.UnitProduk
	case "LITER", "LTR":
		return models.UnitLiter
	default:
		return strings.ToUpper(strings.TrimSpace(s))
	}
}
