package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mchuang3/dentms/internal/domain/models"
)

// SettingsStore loads and persists the per-clinic bonus rates.
type SettingsStore interface {
	GetBonusSettings(ctx context.Context, clinicID string) (models.BonusSettings, error)
	SaveBonusSettings(ctx context.Context, settings models.BonusSettings) error
}

// Directory exposes the staff list and doctor commission rates.
type Directory interface {
	ListStaff(ctx context.Context, clinicID string) ([]models.Staff, error)
	GetDoctor(ctx context.Context, clinicID, doctorID string) (*models.Doctor, error)
	SaveDoctorRates(ctx context.Context, clinicID, doctorID string, rates map[models.TreatmentCategory]float64) error
}

// SettingsHandler exposes bonus settings, commission rates and the staff
// directory.
type SettingsHandler struct {
	settings  SettingsStore
	directory Directory
	logger    *zap.Logger
}

// NewSettingsHandler constructs the HTTP handler adapter for settings.
func NewSettingsHandler(settings SettingsStore, directory Directory, logger *zap.Logger) *SettingsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsHandler{settings: settings, directory: directory, logger: logger}
}

// GetBonusSettings handles GET /api/clinics/:clinicID/settings. Clinics that
// never saved settings get the documented defaults.
func (h *SettingsHandler) GetBonusSettings(c *gin.Context) {
	settings, err := h.settings.GetBonusSettings(c.Request.Context(), c.Param("clinicID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

type saveSettingsRequest struct {
	PoolRate    *float64 `json:"poolRate" binding:"required"`
	SelfPayRate *float64 `json:"selfPayRate" binding:"required"`
	RetailRate  *float64 `json:"retailRate" binding:"required"`
}

func validRate(r float64) bool { return r >= 0 && r <= 100 }

// SaveBonusSettings handles PUT /api/clinics/:clinicID/settings.
func (h *SettingsHandler) SaveBonusSettings(c *gin.Context) {
	var req saveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid settings payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if !validRate(*req.PoolRate) || !validRate(*req.SelfPayRate) || !validRate(*req.RetailRate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rates must be between 0 and 100"})
		return
	}

	settings := models.BonusSettings{
		ClinicID:    c.Param("clinicID"),
		PoolRate:    *req.PoolRate,
		SelfPayRate: *req.SelfPayRate,
		RetailRate:  *req.RetailRate,
	}
	if err := h.settings.SaveBonusSettings(c.Request.Context(), settings); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ListStaff handles GET /api/clinics/:clinicID/staff.
func (h *SettingsHandler) ListStaff(c *gin.Context) {
	staff, err := h.directory.ListStaff(c.Request.Context(), c.Param("clinicID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

// GetDoctorRates handles GET /api/clinics/:clinicID/doctors/:doctorID/rates.
func (h *SettingsHandler) GetDoctorRates(c *gin.Context) {
	doctor, err := h.directory.GetDoctor(c.Request.Context(), c.Param("clinicID"), c.Param("doctorID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctorId": doctor.ID, "commissionRates": doctor.CommissionRates})
}

// SaveDoctorRates handles PUT /api/clinics/:clinicID/doctors/:doctorID/rates.
func (h *SettingsHandler) SaveDoctorRates(c *gin.Context) {
	var rates map[models.TreatmentCategory]float64
	if err := c.ShouldBindJSON(&rates); err != nil {
		h.logger.Warn("invalid rates payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	for category, rate := range rates {
		if !category.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category " + string(category)})
			return
		}
		if !validRate(rate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rates must be between 0 and 100"})
			return
		}
	}

	if err := h.directory.SaveDoctorRates(c.Request.Context(), c.Param("clinicID"), c.Param("doctorID"), rates); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
