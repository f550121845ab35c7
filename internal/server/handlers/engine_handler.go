package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mchuang3/dentms/internal/domain/models"
)

// BonusCalculator computes the monthly assistant bonus report.
type BonusCalculator interface {
	Calculate(ctx context.Context, clinicID, month string) (*models.BonusReport, error)
}

// SalaryCalculator computes doctor salary statements.
type SalaryCalculator interface {
	StatementForDoctor(ctx context.Context, clinicID, doctorID, month string) (*models.SalaryStatement, error)
	Summary(ctx context.Context, clinicID, month string) (*models.ClinicSalarySummary, error)
}

// ReportExporter appends computed reports to the spreadsheet sink.
type ReportExporter interface {
	ExportSalaryStatement(ctx context.Context, statement *models.SalaryStatement) error
	ExportBonusReport(ctx context.Context, report *models.BonusReport) error
}

// EngineHandler exposes the calculation engine over HTTP.
type EngineHandler struct {
	bonus    BonusCalculator
	salary   SalaryCalculator
	exporter ReportExporter // nil when the sheets sink is not configured
	logger   *zap.Logger
}

// NewEngineHandler constructs the HTTP handler adapter for the calculators.
func NewEngineHandler(bonus BonusCalculator, salary SalaryCalculator, exporter ReportExporter, logger *zap.Logger) *EngineHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EngineHandler{bonus: bonus, salary: salary, exporter: exporter, logger: logger}
}

// GetBonusReport handles GET /api/clinics/:clinicID/bonus?month=YYYY-MM.
func (h *EngineHandler) GetBonusReport(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}

	report, err := h.bonus.Calculate(c.Request.Context(), c.Param("clinicID"), month)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetSalarySummary handles GET /api/clinics/:clinicID/salary?month=YYYY-MM.
func (h *EngineHandler) GetSalarySummary(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}

	summary, err := h.salary.Summary(c.Request.Context(), c.Param("clinicID"), month)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetSalaryStatement handles GET /api/clinics/:clinicID/salary/:doctorID?month=YYYY-MM.
func (h *EngineHandler) GetSalaryStatement(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}

	statement, err := h.salary.StatementForDoctor(c.Request.Context(), c.Param("clinicID"), c.Param("doctorID"), month)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, statement)
}

// ExportSalaryStatement handles POST /api/clinics/:clinicID/salary/:doctorID/export?month=YYYY-MM.
func (h *EngineHandler) ExportSalaryStatement(c *gin.Context) {
	if h.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "spreadsheet export not configured"})
		return
	}
	month, ok := monthParam(c)
	if !ok {
		return
	}

	statement, err := h.salary.StatementForDoctor(c.Request.Context(), c.Param("clinicID"), c.Param("doctorID"), month)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.exporter.ExportSalaryStatement(c.Request.Context(), statement); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// ExportBonusReport handles POST /api/clinics/:clinicID/bonus/export?month=YYYY-MM.
func (h *EngineHandler) ExportBonusReport(c *gin.Context) {
	if h.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "spreadsheet export not configured"})
		return
	}
	month, ok := monthParam(c)
	if !ok {
		return
	}

	report, err := h.bonus.Calculate(c.Request.Context(), c.Param("clinicID"), month)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.exporter.ExportBonusReport(c.Request.Context(), report); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusAccepted)
}
