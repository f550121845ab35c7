package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mchuang3/dentms/internal/domain/models"
)

// LedgerService owns reads and lock-gated writes of the accounting, lab, NHI
// and adjustment data.
type LedgerService interface {
	GetDailyRecord(ctx context.Context, clinicID, date string) (*models.DailyAccountingRecord, error)
	SaveDailyRecord(ctx context.Context, record models.DailyAccountingRecord) error
	ListTechnicianRecords(ctx context.Context, clinicID, labName, month string) ([]models.TechnicianRecord, error)
	AddTechnicianRecord(ctx context.Context, record models.TechnicianRecord) (primitive.ObjectID, error)
	DeleteTechnicianRecord(ctx context.Context, clinicID string, id primitive.ObjectID) error
	ListNHIRecords(ctx context.Context, clinicID, month string) ([]models.NHIRecord, error)
	SaveNHIRecord(ctx context.Context, record models.NHIRecord) error
	ListAdjustments(ctx context.Context, clinicID, month string) ([]models.SalaryAdjustment, error)
	AddAdjustment(ctx context.Context, adjustment models.SalaryAdjustment) (primitive.ObjectID, error)
	DeleteAdjustment(ctx context.Context, clinicID string, id primitive.ObjectID) error
	GetMonthLock(ctx context.Context, clinicID, month string) (models.MonthLock, error)
	SetMonthLock(ctx context.Context, clinicID, month string, locked bool, actor string) (models.MonthLock, error)
}

// LedgerHandler exposes the daily POS and record-keeping surface.
type LedgerHandler struct {
	svc    LedgerService
	logger *zap.Logger
}

// NewLedgerHandler constructs the HTTP handler adapter for the ledger.
func NewLedgerHandler(svc LedgerService, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{svc: svc, logger: logger}
}

// GetDailyRecord handles GET /api/clinics/:clinicID/accounting/:date.
func (h *LedgerHandler) GetDailyRecord(c *gin.Context) {
	record, err := h.svc.GetDailyRecord(c.Request.Context(), c.Param("clinicID"), c.Param("date"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// SaveDailyRecord handles PUT /api/clinics/:clinicID/accounting/:date.
func (h *LedgerHandler) SaveDailyRecord(c *gin.Context) {
	var record models.DailyAccountingRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		h.logger.Warn("invalid daily record payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	record.ClinicID = c.Param("clinicID")
	record.Date = c.Param("date")

	if err := h.svc.SaveDailyRecord(c.Request.Context(), record); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTechnicianRecords handles GET /api/clinics/:clinicID/technicians?month=&lab=.
func (h *LedgerHandler) ListTechnicianRecords(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}

	records, err := h.svc.ListTechnicianRecords(c.Request.Context(), c.Param("clinicID"), c.Query("lab"), month)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// AddTechnicianRecord handles POST /api/clinics/:clinicID/technicians.
func (h *LedgerHandler) AddTechnicianRecord(c *gin.Context) {
	var record models.TechnicianRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		h.logger.Warn("invalid technician record payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	record.ClinicID = c.Param("clinicID")

	id, err := h.svc.AddTechnicianRecord(c.Request.Context(), record)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id.Hex()})
}

// DeleteTechnicianRecord handles DELETE /api/clinics/:clinicID/technicians/:id.
// The month lock is checked against the stored record's date.
func (h *LedgerHandler) DeleteTechnicianRecord(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	if err := h.svc.DeleteTechnicianRecord(c.Request.Context(), c.Param("clinicID"), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListNHIRecords handles GET /api/clinics/:clinicID/nhi?month=.
func (h *LedgerHandler) ListNHIRecords(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}

	records, err := h.svc.ListNHIRecords(c.Request.Context(), c.Param("clinicID"), month)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// SaveNHIRecord handles PUT /api/clinics/:clinicID/nhi.
func (h *LedgerHandler) SaveNHIRecord(c *gin.Context) {
	var record models.NHIRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		h.logger.Warn("invalid nhi record payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	record.ClinicID = c.Param("clinicID")

	if err := h.svc.SaveNHIRecord(c.Request.Context(), record); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAdjustments handles GET /api/clinics/:clinicID/adjustments?month=.
func (h *LedgerHandler) ListAdjustments(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}

	adjustments, err := h.svc.ListAdjustments(c.Request.Context(), c.Param("clinicID"), month)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, adjustments)
}

// AddAdjustment handles POST /api/clinics/:clinicID/adjustments.
func (h *LedgerHandler) AddAdjustment(c *gin.Context) {
	var adjustment models.SalaryAdjustment
	if err := c.ShouldBindJSON(&adjustment); err != nil {
		h.logger.Warn("invalid adjustment payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	adjustment.ClinicID = c.Param("clinicID")

	id, err := h.svc.AddAdjustment(c.Request.Context(), adjustment)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id.Hex()})
}

// DeleteAdjustment handles DELETE /api/clinics/:clinicID/adjustments/:id.
// The month lock is checked against the stored adjustment's month.
func (h *LedgerHandler) DeleteAdjustment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid adjustment id"})
		return
	}

	if err := h.svc.DeleteAdjustment(c.Request.Context(), c.Param("clinicID"), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMonthLock handles GET /api/clinics/:clinicID/lock?month=.
func (h *LedgerHandler) GetMonthLock(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}

	lock, err := h.svc.GetMonthLock(c.Request.Context(), c.Param("clinicID"), month)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, lock)
}

type setLockRequest struct {
	Month  string `json:"month" binding:"required"`
	Locked bool   `json:"locked"`
	Actor  string `json:"actor" binding:"required"`
}

// SetMonthLock handles POST /api/clinics/:clinicID/lock.
func (h *LedgerHandler) SetMonthLock(c *gin.Context) {
	var req setLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid lock payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	lock, err := h.svc.SetMonthLock(c.Request.Context(), c.Param("clinicID"), req.Month, req.Locked, req.Actor)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, lock)
}
