package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/flowers-delivery/app/requests"
	"github.com/flowers-delivery/app/services"
	"github.com/flowers-delivery/internal/tariff"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminController handles operator requests
type AdminController struct {
	adminService *services.AdminService
	logger       *zap.Logger
}

// NewAdminController creates an AdminController
func NewAdminController(adminService *services.AdminService, logger *zap.Logger) *AdminController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// ListTariffs returns the loaded tariff table
func (ac *AdminController) ListTariffs(c *gin.Context) {
	c.JSON(http.StatusOK, ac.adminService.ListTariffs())
}

// ReloadTariffs rebuilds the tariff table from its file
func (ac *AdminController) ReloadTariffs(c *gin.Context) {
	startTime := time.Now()
	listing := ac.adminService.ReloadTariffs()

	c.JSON(http.StatusOK, success("Tariff table reloaded", map[string]interface{}{
		"source":             listing.Source,
		"schema":             listing.Schema,
		"zones":              listing.Zones,
		"processing_time_ms": time.Since(startTime).Milliseconds(),
	}))
}

// ValidateTariffs checks an uploaded tariff file without loading it
func (ac *AdminController) ValidateTariffs(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "MISSING_FILE", "Multipart field \"file\" is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_FILE", "Cannot open uploaded file: "+err.Error())
		return
	}
	defer file.Close()

	report, err := ac.adminService.ValidateTariffs(file, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, tariff.ErrUnknownSchema) {
			abortWithError(c, http.StatusUnprocessableEntity, "UNKNOWN_SCHEMA", err.Error())
			return
		}
		abortWithError(c, http.StatusBadRequest, "INVALID_FILE", err.Error())
		return
	}

	ac.logger.Info("Tariff file validated",
		zap.String("name", report.Name),
		zap.Int("total_rows", report.TotalRows),
		zap.Int("valid_rows", report.ValidRows))
	c.JSON(http.StatusOK, report)
}

// SuggestZones lists tariff zones that resemble parts of an address
func (ac *AdminController) SuggestZones(c *gin.Context) {
	var req requests.SuggestRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request: "+err.Error())
		return
	}

	suggestions := ac.adminService.SuggestZones(req.Address, req.Limit)
	c.JSON(http.StatusOK, gin.H{
		"address":     req.Address,
		"suggestions": suggestions,
	})
}

// ClearCache empties the geocode cache
func (ac *AdminController) ClearCache(c *gin.Context) {
	err := ac.adminService.ClearCache(c.Request.Context())
	switch {
	case errors.Is(err, services.ErrCacheDisabled):
		abortWithError(c, http.StatusConflict, "CACHE_DISABLED", err.Error())
		return
	case err != nil:
		ac.logger.Error("Cannot clear geocode cache", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "CACHE_ERROR", err.Error())
		return
	}

	ac.logger.Info("Geocode cache cleared")
	c.JSON(http.StatusOK, success("Geocode cache cleared", nil))
}

// GetStats returns process and cache statistics
func (ac *AdminController) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, ac.adminService.GetSystemStats(c.Request.Context()))
}
