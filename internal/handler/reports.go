package handler

import (
	"fmt"
	"net/http"

	"github.com/sahilo5/delval-report-management/internal/report"
	"github.com/sahilo5/delval-report-management/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ReportsHandler struct{ svc service.UnitService }

func NewReportsHandler(svc service.UnitService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// PDF streams the heat annexure as a PDF download.
func (h *ReportsHandler) PDF(c *gin.Context) {
	orderNo := c.Param("order_no")
	data, err := h.svc.ReportData(c.Request.Context(), orderNo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="Heat_Report_%s.pdf"`, orderNo))
	c.Status(http.StatusOK)
	if err := report.WritePDF(c.Writer, data); err != nil {
		// Headers are already gone; all we can do is log.
		log.Error().Err(err).Str("order_no", orderNo).Msg("pdf report streaming failed")
	}
}

// HTML serves the printable report page (auto-triggers the print dialog).
func (h *ReportsHandler) HTML(c *gin.Context) {
	orderNo := c.Param("order_no")
	data, err := h.svc.ReportData(c.Request.Context(), orderNo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := report.WriteHTML(c.Writer, data); err != nil {
		log.Error().Err(err).Str("order_no", orderNo).Msg("html report rendering failed")
	}
}
