package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/shelfmaster/backend/internal/application/report"
)

// ReportHandler handles reporting API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// LendingSummary handles GET /api/v1/reports/lending?from=&to=
// Dates are inclusive calendar days in RFC 3339 date form.
func (h *ReportHandler) LendingSummary(c *gin.Context) {
	from, ok := h.dateParam(c, "from")
	if !ok {
		return
	}
	to, ok := h.dateParam(c, "to")
	if !ok {
		return
	}

	// The period upper bound is exclusive, so include the whole "to" day
	summary, err := h.reportService.LendingSummary(c.Request.Context(), from, to.AddDate(0, 0, 1))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

func (h *ReportHandler) dateParam(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		h.BadRequest(c, name+" query parameter is required")
		return time.Time{}, false
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		h.BadRequest(c, name+" must be a date in YYYY-MM-DD form")
		return time.Time{}, false
	}
	return parsed, true
}
