package api

import (
	"github.com/hiveden/hwsnap/internal/hw"

	"go.uber.org/zap"
)

// APIHandler serves host snapshots and inventories over HTTP.
type APIHandler struct {
	collector *hw.Collector
	logger    *zap.Logger

	inventory func() (*hw.HardwareInfo, error)
	hostInfo  func() (*hw.SystemInfo, error)
}

// NewAPIHandler creates a new APIHandler instance.
func NewAPIHandler(collector *hw.Collector, logger *zap.Logger) *APIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{
		collector: collector,
		logger:    logger,
		inventory: hw.Inventory,
		hostInfo:  hw.HostInfo,
	}
}
