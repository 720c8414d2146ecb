package handlers

import (
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripplanner/metrics"
	"tripplanner/planner"
	"tripplanner/services"
)

// ShareResponse is what a client passes to its native share sheet. When none
// is available it copies URL itself and shows FallbackNotice.
type ShareResponse struct {
	planner.Share
	FallbackNotice string `json:"fallback_notice"`
}

func (h *Handler) ExportSessionJSON(c *gin.Context) {
	plan, ok := h.reviewedPlan(c)
	if !ok {
		return
	}
	h.sendJSONExport(c, plan)
}

func (h *Handler) ExportSessionPDF(c *gin.Context) {
	plan, ok := h.reviewedPlan(c)
	if !ok {
		return
	}

	pdfBytes, err := services.GeneratePlanPDF(plan)
	if err != nil {
		h.logger.Error("PDF generation failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}
	h.count(func(m *metrics.Metrics) { m.Exports.WithLabelValues("pdf").Inc() })

	c.Header("Content-Disposition", attachment(services.PDFFilename(plan)))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *Handler) ShareSession(c *gin.Context) {
	plan, ok := h.reviewedPlan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ShareResponse{
		Share:          planner.ShareContent(plan, h.sessionURL(c)),
		FallbackNotice: "Link copied to clipboard!",
	})
}

func (h *Handler) Health(c *gin.Context) {
	sessions := 0
	if h.store != nil {
		sessions = h.store.Count()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "Trip Planner API",
		"sessions": sessions,
	})
}

func (h *Handler) sendJSONExport(c *gin.Context, plan *planner.TripPlan) {
	data, err := planner.ExportJSON(plan)
	if err != nil {
		h.logger.Error("JSON export failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export trip plan"})
		return
	}
	h.count(func(m *metrics.Metrics) { m.Exports.WithLabelValues("json").Inc() })

	c.Header("Content-Disposition", attachment(planner.ExportFilename(plan)))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func attachment(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}

// sessionURL is the address of the session view, used as the shared link.
// PublicBaseURL wins; X-Forwarded-Proto and X-Forwarded-Host are only read
// when the request came through a trusted proxy.
func (h *Handler) sessionURL(c *gin.Context) string {
	base := strings.TrimRight(h.publicBaseURL, "/")
	if base == "" {
		scheme, host := "http", c.Request.Host
		if c.Request.TLS != nil {
			scheme = "https"
		}
		if h.fromTrustedProxy(c) {
			if proto := c.GetHeader("X-Forwarded-Proto"); proto == "http" || proto == "https" {
				scheme = proto
			}
			if fwd := c.GetHeader("X-Forwarded-Host"); fwd != "" {
				host = strings.TrimSpace(strings.Split(fwd, ",")[0])
			}
		}
		base = scheme + "://" + host
	}
	return base + "/api/sessions/" + c.Param("id")
}
