package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/robinoyako/sips/internal/domain/models"
)

// RemainderStore is the slice of the ledger store the sisa CRUD uses.
type RemainderStore interface {
	ListRemainder(ctx context.Context) ([]models.Remainder, error)
	CreateRemainder(ctx context.Context, in models.StockInput) (*models.Remainder, error)
	UpdateRemainder(ctx context.Context, id int64, in models.StockInput) (*models.Remainder, error)
	DeleteRemainder(ctx context.Context, id int64) error
}

// RemainderHandler serves CRUD on the live sisa rows.
type RemainderHandler struct {
	store  RemainderStore
	logger *zap.Logger
}

// NewRemainderHandler constructs the HTTP handler adapter.
func NewRemainderHandler(store RemainderStore, logger *zap.Logger) *RemainderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemainderHandler{store: store, logger: logger}
}

// List returns all remainder rows, newest first.
func (h *RemainderHandler) List(c *gin.Context) {
	items, err := h.store.ListRemainder(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err, "gagal mengambil data")
		return
	}
	if items == nil {
		items = []models.Remainder{}
	}
	c.JSON(http.StatusOK, items)
}

// Create inserts one remainder row.
func (h *RemainderHandler) Create(c *gin.Context) {
	in, ok := bindRemainderInput(c)
	if !ok {
		return
	}
	item, err := h.store.CreateRemainder(c.Request.Context(), in)
	if err != nil {
		fail(c, h.logger, err, "gagal menambah data")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Update rewrites one remainder row.
func (h *RemainderHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	in, ok := bindRemainderInput(c)
	if !ok {
		return
	}
	item, err := h.store.UpdateRemainder(c.Request.Context(), id, in)
	if err != nil {
		fail(c, h.logger, err, "gagal update data")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete removes one remainder row.
func (h *RemainderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteRemainder(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err, "gagal menghapus data")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "berhasil menghapus"})
}

// bindRemainderInput accepts a zero jumlah: an item can be fully used up by
// end of day. Jumlah binds as a pointer so an absent field is still rejected.
func bindRemainderInput(c *gin.Context) (models.StockInput, bool) {
	var in struct {
		Nama     string   `json:"nama"`
		Jumlah   *float64 `json:"jumlah"`
		Satuan   string   `json:"satuan"`
		Kategori string   `json:"kategori"`
	}
	if err := c.ShouldBindJSON(&in); err != nil ||
		in.Nama == "" || in.Jumlah == nil || *in.Jumlah < 0 || in.Satuan == "" || in.Kategori == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "semua field wajib diisi"})
		return models.StockInput{}, false
	}
	return models.StockInput{
		Nama:     in.Nama,
		Jumlah:   *in.Jumlah,
		Satuan:   in.Satuan,
		Kategori: in.Kategori,
	}, true
}
