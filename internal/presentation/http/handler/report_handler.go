package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/laundromart-api/internal/application/service"
	"github.com/sangkips/laundromart-api/internal/domain/ledger"
	"github.com/sangkips/laundromart-api/internal/presentation/http/dto/response"
	"github.com/sangkips/laundromart-api/pkg/export"
)

// ReportHandler handles reporting and export
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) window(c *gin.Context) (ledger.Window, bool) {
	w, err := h.reportService.ResolveWindow(service.WindowQuery{
		Period: c.DefaultQuery("period", string(ledger.PeriodMonth)),
		Start:  c.Query("start"),
		End:    c.Query("end"),
	})
	if err != nil {
		response.Error(c, err)
		return ledger.Window{}, false
	}
	return w, true
}

// Summary handles the profit and loss summary for a window
func (h *ReportHandler) Summary(c *gin.Context) {
	w, ok := h.window(c)
	if !ok {
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), w)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report summary retrieved successfully", summary)
}

// Sales handles today, week, month and year sales totals
func (h *ReportHandler) Sales(c *gin.Context) {
	periods, err := h.reportService.SalesPeriods(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales retrieved successfully", periods)
}

// Revenue handles the revenue series for daily, weekly or monthly buckets
func (h *ReportHandler) Revenue(c *gin.Context) {
	series, err := h.reportService.RevenueSeries(c.Request.Context(), c.DefaultQuery("granularity", service.SeriesDaily))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Revenue series retrieved successfully", series)
}

// Export handles downloading report rows as CSV or XLSX
func (h *ReportHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	w, ok := h.window(c)
	if !ok {
		return
	}

	in := &service.ExportInput{Window: w, Dataset: c.Query("dataset"), Format: format}
	var buf bytes.Buffer
	if err := h.reportService.Export(c.Request.Context(), &buf, in); err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+in.Filename()+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
