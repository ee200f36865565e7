package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supervault_dashboard/internal/app/port"
)

// CacheResponse acknowledges a cache operation.
type CacheResponse struct {
	Status string `json:"status"`
	Vault  string `json:"vault,omitempty"`
}

// CacheHandler exposes the response cache maintenance endpoints.
type CacheHandler struct {
	service port.DashboardService
	logger  port.Logger
}

// NewCacheHandler creates a new CacheHandler.
func NewCacheHandler(s port.DashboardService, l port.Logger) *CacheHandler {
	return &CacheHandler{service: s, logger: l}
}

// ClearHandler drops every cached response.
func (h *CacheHandler) ClearHandler(c *gin.Context) {
	h.service.ClearCache(c.Request.Context())
	h.logger.Info("Response cache cleared via API")
	c.JSON(http.StatusOK, CacheResponse{Status: "cleared"})
}

// ClearVaultHandler drops the latest-block responses of one vault on ?chain_id.
func (h *CacheHandler) ClearVaultHandler(c *gin.Context) {
	vault, ok := vaultParam(c)
	if !ok {
		return
	}
	h.service.ClearVaultCache(c.Request.Context(), c.Query("chain_id"), vault)
	c.JSON(http.StatusOK, CacheResponse{Status: "cleared", Vault: vault})
}
