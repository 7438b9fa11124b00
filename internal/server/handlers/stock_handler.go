package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/robinoyako/sips/internal/domain/models"
)

// StockStore is the slice of the ledger store the baseline CRUD uses.
type StockStore interface {
	ListStartingStock(ctx context.Context, kategori string) ([]models.StartingStock, error)
	GetStartingStock(ctx context.Context, id int64) (*models.StartingStock, error)
	CreateStartingStock(ctx context.Context, in models.StockInput) (*models.StartingStock, error)
	UpdateStartingStock(ctx context.Context, id int64, in models.StockInput) (*models.StartingStock, error)
	DeleteStartingStock(ctx context.Context, id int64) error
}

// StockHandler serves CRUD on the stok_awal baseline.
type StockHandler struct {
	store  StockStore
	logger *zap.Logger
}

// NewStockHandler constructs the HTTP handler adapter.
func NewStockHandler(store StockStore, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{store: store, logger: logger}
}

// List returns all baseline rows, optionally filtered by ?kategori=.
func (h *StockHandler) List(c *gin.Context) {
	items, err := h.store.ListStartingStock(c.Request.Context(), c.Query("kategori"))
	if err != nil {
		fail(c, h.logger, err, "gagal mengambil data")
		return
	}
	if items == nil {
		items = []models.StartingStock{}
	}
	c.JSON(http.StatusOK, items)
}

// Get returns one baseline row by id.
func (h *StockHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.store.GetStartingStock(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err, "gagal mengambil detail")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create inserts one baseline row. All four fields are required.
func (h *StockHandler) Create(c *gin.Context) {
	in, ok := bindStockInput(c)
	if !ok {
		return
	}
	item, err := h.store.CreateStartingStock(c.Request.Context(), in)
	if err != nil {
		fail(c, h.logger, err, "gagal menambah data")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Update rewrites one baseline row.
func (h *StockHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	in, ok := bindStockInput(c)
	if !ok {
		return
	}
	item, err := h.store.UpdateStartingStock(c.Request.Context(), id, in)
	if err != nil {
		fail(c, h.logger, err, "gagal update data")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete removes one baseline row.
func (h *StockHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteStartingStock(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err, "gagal menghapus data")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "berhasil menghapus"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return 0, false
	}
	return id, true
}

func bindStockInput(c *gin.Context) (models.StockInput, bool) {
	var in models.StockInput
	if err := c.ShouldBindJSON(&in); err != nil ||
		in.Nama == "" || in.Jumlah <= 0 || in.Satuan == "" || in.Kategori == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "semua field wajib diisi"})
		return models.StockInput{}, false
	}
	return in, true
}
