package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mchuang3/dentms/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(engine *handlers.EngineHandler, ledger *handlers.LedgerHandler, settings *handlers.SettingsHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	clinic := r.Group("/api/clinics/:clinicID")
	{
		clinic.GET("/accounting/:date", ledger.GetDailyRecord)
		clinic.PUT("/accounting/:date", ledger.SaveDailyRecord)

		clinic.GET("/technicians", ledger.ListTechnicianRecords)
		clinic.POST("/technicians", ledger.AddTechnicianRecord)
		clinic.DELETE("/technicians/:id", ledger.DeleteTechnicianRecord)

		clinic.GET("/nhi", ledger.ListNHIRecords)
		clinic.PUT("/nhi", ledger.SaveNHIRecord)

		clinic.GET("/adjustments", ledger.ListAdjustments)
		clinic.POST("/adjustments", ledger.AddAdjustment)
		clinic.DELETE("/adjustments/:id", ledger.DeleteAdjustment)

		clinic.GET("/lock", ledger.GetMonthLock)
		clinic.POST("/lock", ledger.SetMonthLock)

		clinic.GET("/staff", settings.ListStaff)
		clinic.GET("/settings", settings.GetBonusSettings)
		clinic.PUT("/settings", settings.SaveBonusSettings)
		clinic.GET("/doctors/:doctorID/rates", settings.GetDoctorRates)
		clinic.PUT("/doctors/:doctorID/rates", settings.SaveDoctorRates)

		clinic.GET("/bonus", engine.GetBonusReport)
		clinic.POST("/bonus/export", engine.ExportBonusReport)
		clinic.GET("/salary", engine.GetSalarySummary)
		clinic.GET("/salary/:doctorID", engine.GetSalaryStatement)
		clinic.POST("/salary/:doctorID/export", engine.ExportSalaryStatement)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
