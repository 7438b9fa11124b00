package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robinoyako/sips/internal/domain/models"
	"github.com/robinoyako/sips/internal/service/ingest"
	"github.com/robinoyako/sips/internal/service/report"
	"github.com/robinoyako/sips/internal/service/reset"
)

type fakeLedger struct {
	baseline  []models.StartingStock
	hasReport bool
	archived  int
}

func (f *fakeLedger) ListStartingStock(ctx context.Context, kategori string) ([]models.StartingStock, error) {
	return f.baseline, nil
}

func (f *fakeLedger) ListRemainder(ctx context.Context) ([]models.Remainder, error) {
	return nil, nil
}

func (f *fakeLedger) CreateRemainder(ctx context.Context, in models.StockInput) (*models.Remainder, error) {
	return &models.Remainder{ID: 1, Nama: in.Nama, Jumlah: in.Jumlah, Satuan: in.Satuan, Kategori: in.Kategori}, nil
}

func (f *fakeLedger) UpdateRemainder(ctx context.Context, id int64, in models.StockInput) (*models.Remainder, error) {
	return &models.Remainder{ID: id, Nama: in.Nama, Jumlah: in.Jumlah, Satuan: in.Satuan, Kategori: in.Kategori}, nil
}

func (f *fakeLedger) DeleteRemainder(ctx context.Context, id int64) error { return nil }

func (f *fakeLedger) HasReportBetween(ctx context.Context, from, to time.Time) (bool, error) {
	return f.hasReport, nil
}

func (f *fakeLedger) ArchiveAndReseed(ctx context.Context, reports []models.HistoricalReport, reseed []models.StockInput) error {
	f.archived = len(reports)
	return nil
}

func (f *fakeLedger) ListReportTimestamps(ctx context.Context) ([]time.Time, error) {
	return nil, nil
}

func (f *fakeLedger) ListReportsBetween(ctx context.Context, from, to time.Time) ([]models.HistoricalReport, error) {
	return nil, nil
}

func (f *fakeLedger) ListStartingStockNames(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeLedger) CreateStartingStock(ctx context.Context, in models.StockInput) (*models.StartingStock, error) {
	st := models.StartingStock{ID: 1, Nama: in.Nama, Jumlah: in.Jumlah, Satuan: in.Satuan, Kategori: in.Kategori}
	f.baseline = append(f.baseline, st)
	return &st, nil
}

func (f *fakeLedger) GetStartingStock(ctx context.Context, id int64) (*models.StartingStock, error) {
	return nil, models.ErrNotFound
}

func (f *fakeLedger) UpdateStartingStock(ctx context.Context, id int64, in models.StockInput) (*models.StartingStock, error) {
	return nil, models.ErrNotFound
}

func (f *fakeLedger) DeleteStartingStock(ctx context.Context, id int64) error {
	return models.ErrNotFound
}

func do(t *testing.T, register func(*gin.Engine), req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	register(r)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestResetHandlerSuccess(t *testing.T) {
	ledger := &fakeLedger{baseline: []models.StartingStock{{Nama: "Beras", Jumlah: 10}}}
	h := NewResetHandler(reset.NewService(ledger, nil, nil), nil)

	w := do(t, func(r *gin.Engine) { r.POST("/reset", h.Run) },
		httptest.NewRequest(http.MethodPost, "/reset", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body["archivedCount"])
}

func TestResetHandlerEmptyBaseline(t *testing.T) {
	h := NewResetHandler(reset.NewService(&fakeLedger{}, nil, nil), nil)

	w := do(t, func(r *gin.Engine) { r.POST("/reset", h.Run) },
		httptest.NewRequest(http.MethodPost, "/reset", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetHandlerAlreadyRanToday(t *testing.T) {
	ledger := &fakeLedger{
		baseline:  []models.StartingStock{{Nama: "Beras", Jumlah: 10}},
		hasReport: true,
	}
	h := NewResetHandler(reset.NewService(ledger, nil, nil), nil)

	w := do(t, func(r *gin.Engine) { r.POST("/reset", h.Run) },
		httptest.NewRequest(http.MethodPost, "/reset", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReportHandlerInvalidDate(t *testing.T) {
	h := NewReportHandler(report.NewService(&fakeLedger{}, nil), nil)

	w := do(t, func(r *gin.Engine) { r.GET("/laporan/:tanggal", h.GetByDate) },
		httptest.NewRequest(http.MethodGet, "/laporan/bukan-tanggal", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemainderHandlerAcceptsZeroQuantity(t *testing.T) {
	h := NewRemainderHandler(&fakeLedger{}, nil)

	req := httptest.NewRequest(http.MethodPut, "/sisa/1",
		strings.NewReader(`{"nama":"Beras","jumlah":0,"satuan":"KG","kategori":"BAHAN"}`))
	req.Header.Set("Content-Type", "application/json")

	w := do(t, func(r *gin.Engine) { r.PUT("/sisa/:id", h.Update) }, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body models.Remainder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0.0, body.Jumlah)
}

func TestRemainderHandlerCreateZeroQuantity(t *testing.T) {
	h := NewRemainderHandler(&fakeLedger{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/sisa",
		strings.NewReader(`{"nama":"Beras","jumlah":0,"satuan":"KG","kategori":"BAHAN"}`))
	req.Header.Set("Content-Type", "application/json")

	w := do(t, func(r *gin.Engine) { r.POST("/sisa", h.Create) }, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRemainderHandlerRejectsNegativeAndMissingQuantity(t *testing.T) {
	h := NewRemainderHandler(&fakeLedger{}, nil)

	for _, payload := range []string{
		`{"nama":"Beras","jumlah":-1,"satuan":"KG","kategori":"BAHAN"}`,
		`{"nama":"Beras","satuan":"KG","kategori":"BAHAN"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/sisa", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		w := do(t, func(r *gin.Engine) { r.POST("/sisa", h.Create) }, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "payload %s", payload)
	}
}

func TestStockHandlerCreateRejectsZeroQuantity(t *testing.T) {
	// The baseline keeps the strict check: a zero starting stock is a typo,
	// not a state the stall tracks.
	h := NewStockHandler(&fakeLedger{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/stok",
		strings.NewReader(`{"nama":"Beras","jumlah":0,"satuan":"KG","kategori":"BAHAN"}`))
	req.Header.Set("Content-Type", "application/json")

	w := do(t, func(r *gin.Engine) { r.POST("/stok", h.Create) }, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStockHandlerCreateMissingField(t *testing.T) {
	h := NewStockHandler(&fakeLedger{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/stok",
		strings.NewReader(`{"nama":"Beras","jumlah":10}`))
	req.Header.Set("Content-Type", "application/json")

	w := do(t, func(r *gin.Engine) { r.POST("/stok", h.Create) }, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStockHandlerGetMissingID(t *testing.T) {
	h := NewStockHandler(&fakeLedger{}, nil)

	w := do(t, func(r *gin.Engine) { r.GET("/stok/:id", h.Get) },
		httptest.NewRequest(http.MethodGet, "/stok/42", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIngestHandlerNoFiles(t *testing.T) {
	h := NewIngestHandler(ingest.NewService(&fakeLedger{}, nil), nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := do(t, func(r *gin.Engine) { r.POST("/upload", h.Upload) }, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestHandlerUpload(t *testing.T) {
	ledger := &fakeLedger{}
	h := NewIngestHandler(ingest.NewService(ledger, nil), nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("files", "stok.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("nama,jumlah,satuan,kategori\nBeras,10,kg,BAHAN\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := do(t, func(r *gin.Engine) { r.POST("/upload", h.Upload) }, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body["savedRows"])
	assert.EqualValues(t, 1, body["totalFiles"])
}
