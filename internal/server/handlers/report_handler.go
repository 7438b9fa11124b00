package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/robinoyako/sips/internal/service/report"
)

// ReportHandler serves the daily report read side.
type ReportHandler struct {
	svc    *report.Service
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc *report.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// ListDates returns every distinct report date, most recent first.
func (h *ReportHandler) ListDates(c *gin.Context) {
	dates, err := h.svc.ListReportDates(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err, "gagal memuat laporan")
		return
	}

	out := make([]gin.H, 0, len(dates))
	for _, d := range dates {
		out = append(out, gin.H{"date": d})
	}
	c.JSON(http.StatusOK, out)
}

// GetByDate returns the report lines for one calendar date.
func (h *ReportHandler) GetByDate(c *gin.Context) {
	lines, err := h.svc.GetReportForDate(c.Request.Context(), c.Param("tanggal"))
	if err != nil {
		fail(c, h.logger, err, "gagal memuat detail laporan")
		return
	}
	c.JSON(http.StatusOK, lines)
}

// Export streams one day's report as an XLSX download.
func (h *ReportHandler) Export(c *gin.Context) {
	tanggal := c.Param("tanggal")
	f, err := h.svc.ExportForDate(c.Request.Context(), tanggal)
	if err != nil {
		fail(c, h.logger, err, "gagal membuat export")
		return
	}
	defer func() { _ = f.Close() }()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=laporan-%s.xlsx", tanggal))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		h.logger.Error("failed streaming export", zap.Error(err), zap.String("tanggal", tanggal))
	}
}
