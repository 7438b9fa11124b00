package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robinoyako/sips/internal/domain/models"
)

type fakeStore struct {
	names   []string
	created []models.StockInput
}

func (f *fakeStore) ListStartingStockNames(ctx context.Context) ([]string, error) {
	return f.names, nil
}

func (f *fakeStore) CreateStartingStock(ctx context.Context, in models.StockInput) (*models.StartingStock, error) {
	f.created = append(f.created, in)
	return &models.StartingStock{ID: int64(len(f.created)), Nama: in.Nama}, nil
}

func TestIngestDeduplicatesWithinBatch(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	csv := "nama,jumlah,satuan,kategori\n" +
		"Beras,10,kilogram,bahan\n" +
		"Beras,5,kg,BAHAN\n"

	res, err := svc.IngestFiles(context.Background(), [][]byte{[]byte(csv)})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Saved)
	assert.Equal(t, 1, res.SkippedDuplicate)
	assert.Equal(t, 0, res.SkippedInvalid)
	require.Len(t, store.created, 1)
	assert.Equal(t, models.UnitKG, store.created[0].Satuan)
}

func TestIngestDeduplicatesAgainstStoreCaseInsensitive(t *testing.T) {
	store := &fakeStore{names: []string{"beras"}}
	svc := NewService(store, nil)

	csv := "nama,jumlah,satuan,kategori\nBeras,10,kg,BAHAN\n"

	res, err := svc.IngestFiles(context.Background(), [][]byte{[]byte(csv)})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Saved)
	assert.Equal(t, 1, res.SkippedDuplicate)
}

func TestIngestRejectsInvalidRows(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	csv := "nama,jumlah,satuan,kategori\n" +
		",10,kg,BAHAN\n" + // missing name
		"Gula,0,kg,BAHAN\n" + // zero quantity
		"Garam,abc,kg,BAHAN\n" + // non-numeric quantity
		"Telur,30,butir,BAHAN\n" + // unknown unit
		"Teh,2,kg,MINUMAN\n" // unknown category

	res, err := svc.IngestFiles(context.Background(), [][]byte{[]byte(csv)})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Saved)
	assert.Equal(t, 5, res.SkippedInvalid)
	assert.Empty(t, store.created)
}

func TestIngestParsesTSV(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	tsv := "nama\tjumlah\tsatuan\tkategori\n" +
		"Minyak Goreng\t3\tltr\tbahan\n" +
		"Risol\t20\tpcs\tproduk\n"

	res, err := svc.IngestFiles(context.Background(), [][]byte{[]byte(tsv)})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Saved)
	require.Len(t, store.created, 2)
	// Input order preserved.
	assert.Equal(t, "Minyak Goreng", store.created[0].Nama)
	assert.Equal(t, models.UnitLiter, store.created[0].Satuan)
	assert.Equal(t, models.UnitProduk, store.created[1].Satuan)
	assert.Equal(t, models.CategoryProduk, store.created[1].Kategori)
}

func TestIngestCountsTotalFiles(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	one := "nama,jumlah,satuan,kategori\nBeras,10,kg,BAHAN\n"
	two := "nama,jumlah,satuan,kategori\nGula,2,kg,BAHAN\n"

	res, err := svc.IngestFiles(context.Background(), [][]byte{[]byte(one), []byte(two)})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalFiles)
	assert.Equal(t, 2, res.Saved)
}

func TestNormalizeUnit(t *testing.T) {
	cases := map[string]string{
		"kg":       models.UnitKG,
		"KILO":     models.UnitKG,
		"Kilogram": models.UnitKG,
		"pcs":      models.UnitProduk,
		"product":  models.UnitProduk,
		"PRODUK":   models.UnitProduk,
		"ltr":      models.UnitLiter,
		"liter":    models.UnitLiter,
		"butir":    "BUTIR",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeUnit(in), "input %q", in)
	}
}

func TestNormalizeTrimsName(t *testing.T) {
	in, ok := Normalize(RawRow{Nama: "  Beras  ", Jumlah: "10", Satuan: "kg", Kategori: "bahan"})
	require.True(t, ok)
	assert.Equal(t, "Beras", in.Nama)
	assert.Equal(t, models.CategoryBahan, in.Kategori)
}
