package api

import (
	"net/http"

	"github.com/hiveden/hwsnap/internal/hw"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetSnapshot handles the GET /snapshot endpoint.
func (h *APIHandler) GetSnapshot(c *gin.Context) {
	var snap hw.Snapshot
	if err := h.collector.Collect(&snap); err != nil {
		h.logger.Error("failed to collect snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snap)
}

// GetHardwareInfo handles the GET /hw endpoint.
func (h *APIHandler) GetHardwareInfo(c *gin.Context) {
	hwInfo, err := h.inventory()
	if err != nil {
		h.logger.Error("failed to read hardware inventory", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, hwInfo)
}

// GetSystemInfo handles the GET /system endpoint.
func (h *APIHandler) GetSystemInfo(c *gin.Context) {
	sysInfo, err := h.hostInfo()
	if err != nil {
		h.logger.Error("failed to read host info", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sysInfo)
}

// Health handles the GET /healthz endpoint.
func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
