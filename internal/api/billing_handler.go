package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go-confession-board/internal/localization"
	"go-confession-board/internal/service"
	"go-confession-board/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BillingHandler struct {
	billingService *service.BillingService
	translator
}

func NewBillingHandler(billingService *service.BillingService, loc *localization.Localizer) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		translator:     newTranslator(loc),
	}
}

// yearMonthParams reads the optional year/month query, defaulting to the
// current month.
func (h *BillingHandler) yearMonthParams(c *gin.Context) (int, time.Month, bool) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if raw := c.Query("year"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 2000 || value > 2100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year parameter"})
			return 0, 0, false
		}
		year = value
	}
	if raw := c.Query("month"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 || value > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month parameter"})
			return 0, 0, false
		}
		month = time.Month(value)
	}
	return year, month, true
}

func (h *BillingHandler) GetMonthlySummary(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	year, month, ok := h.yearMonthParams(c)
	if !ok {
		return
	}

	summary, err := h.billingService.GetMonthlySummary(userID, year, month)
	if err != nil {
		logger.L.Error("Error building monthly summary", zap.Error(err), zap.Uint("userID", userID))
		h.respondError(c, err, "billing.fetch_failed")
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *BillingHandler) GetHistory(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	rows, err := h.billingService.GetHistory(userID)
	if err != nil {
		logger.L.Error("Error building billing history", zap.Error(err), zap.Uint("userID", userID))
		h.respondError(c, err, "billing.fetch_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": rows})
}

// DownloadInvoice streams the monthly invoice PDF. The filename is Japanese,
// so it goes out RFC 5987 encoded with an ASCII fallback.
func (h *BillingHandler) DownloadInvoice(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	year, month, ok := h.yearMonthParams(c)
	if !ok {
		return
	}

	data, filename, err := h.billingService.RenderInvoicePDF(userID, year, month)
	if err != nil {
		logger.L.Error("Error rendering invoice PDF", zap.Error(err), zap.Uint("userID", userID))
		h.respondError(c, err, "billing.pdf_failed")
		return
	}

	fallback := fmt.Sprintf("invoice_%d-%02d.pdf", year, int(month))
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback, url.PathEscape(filename)))
	c.Data(http.StatusOK, "application/pdf", data)
}
