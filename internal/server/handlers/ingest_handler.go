package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/robinoyako/sips/internal/service/ingest"
)

// IngestHandler accepts multipart CSV/TSV uploads of baseline stock.
type IngestHandler struct {
	svc    *ingest.Service
	logger *zap.Logger
}

// NewIngestHandler constructs the HTTP handler adapter.
func NewIngestHandler(svc *ingest.Service, logger *zap.Logger) *IngestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngestHandler{svc: svc, logger: logger}
}

// Upload reads every file under the multipart field "files" and ingests them
// in order.
func (h *IngestHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload tidak valid"})
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tidak ada file yang diupload"})
		return
	}

	files := make([][]byte, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			fail(c, h.logger, err, "gagal membaca file")
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			fail(c, h.logger, err, "gagal membaca file")
			return
		}
		files = append(files, data)
	}

	res, err := h.svc.IngestFiles(c.Request.Context(), files)
	if err != nil {
		fail(c, h.logger, err, "gagal memproses upload")
		return
	}

	message := "berhasil dimasukkan"
	if res.Saved == 0 {
		message = "file terbaca, tapi tidak ada baris valid yang baru"
	}

	c.JSON(http.StatusOK, gin.H{
		"totalFiles":       res.TotalFiles,
		"savedRows":        res.Saved,
		"skippedInvalid":   res.SkippedInvalid,
		"skippedDuplicate": res.SkippedDuplicate,
		"message":          message,
	})
}
