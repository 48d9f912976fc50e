package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"order_report/internal/output"
	"order_report/internal/report"
	"order_report/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
	log           *zap.Logger
}

func NewReportHandler(reportService services.ReportService, log *zap.Logger) *ReportHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportHandler{reportService: reportService, log: log}
}

// Register mounts the report routes on the router.
func (h *ReportHandler) Register(router gin.IRouter) {
	router.GET("/health", h.Health)

	api := router.Group("/api/report")
	{
		api.GET("", h.GetReport)
		api.GET("/summary", h.GetSummary)
		api.GET("/customers/:customer_id", h.GetCustomer)
	}
}

func (h *ReportHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetReport answers with the text report.
func (h *ReportHandler) GetReport(c *gin.Context) {
	rep, ok := h.load(c)
	if !ok {
		return
	}
	c.String(http.StatusOK, rep.Text())
}

// GetSummary answers with the same bytes the batch run writes to the summary file.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	rep, ok := h.load(c)
	if !ok {
		return
	}
	data, err := output.EncodeJSON(rep.Summary())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *ReportHandler) GetCustomer(c *gin.Context) {
	rep, ok := h.load(c)
	if !ok {
		return
	}

	customerID := c.Param("customer_id")
	block, found := rep.Find(customerID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer has no orders", "customer_id": customerID})
		return
	}
	c.JSON(http.StatusOK, block)
}

func (h *ReportHandler) load(c *gin.Context) (*report.Report, bool) {
	rep, err := h.reportService.Report(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return rep, true
}

func (h *ReportHandler) fail(c *gin.Context, err error) {
	h.log.Error("report request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
