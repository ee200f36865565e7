package restapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"supervault_dashboard/internal/app/port"
	"supervault_dashboard/internal/app/service"
	"supervault_dashboard/internal/app/view"
	"supervault_dashboard/internal/domain/entity"
	"supervault_dashboard/internal/infrastructure/httpclient"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ChainsResponse lists the selectable chains.
type ChainsResponse struct {
	Chains []entity.ChainDefinition `json:"chains"`
}

// VaultsResponse lists the vault selector entries of a chain.
type VaultsResponse struct {
	ChainID string        `json:"chainId"`
	Vaults  []view.Option `json:"vaults"`
}

// VaultResponse carries the home tab cards of one vault.
type VaultResponse struct {
	ChainID     string      `json:"chainId"`
	Vault       string      `json:"vault"`
	BlockNumber *uint64     `json:"blockNumber,omitempty"`
	Cards       *view.Cards `json:"cards"`
}

// PPSResponse carries the PPS card of one vault.
type PPSResponse struct {
	ChainID     string        `json:"chainId"`
	Vault       string        `json:"vault"`
	BlockNumber *uint64       `json:"blockNumber,omitempty"`
	PPS         *view.PPSCard `json:"pps"`
}

// HealthResponse reports the dashboard and pricing API state.
type HealthResponse struct {
	Status   string `json:"status"`
	Upstream string `json:"upstream"`
}

// DashboardHandler serves the dashboard page and the read-only JSON API.
type DashboardHandler struct {
	service port.DashboardService
	logger  port.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(s port.DashboardService, l port.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: s,
		logger:  l,
	}
}

// parseBlock reads an optional positive block number. Empty means latest.
func parseBlock(raw string) (*uint64, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid block number %q", raw)
	}
	if n == 0 {
		return nil, nil
	}
	return &n, nil
}

func parseFlag(raw string) bool {
	b, err := strconv.ParseBool(raw)
	return err == nil && b
}

// vaultParam validates the :address path parameter.
func vaultParam(c *gin.Context) (string, bool) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid vault address %q", address)})
		return "", false
	}
	return address, true
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var statusErr *httpclient.StatusError
	switch {
	case errors.Is(err, service.ErrUnknownChain), errors.Is(err, service.ErrBlockAheadOfHead):
		return http.StatusBadRequest
	case errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func (h *DashboardHandler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusBadGateway {
		h.logger.Error("Upstream request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// PageHandler renders the dashboard. Query: chain, vault, block, tab, refresh.
func (h *DashboardHandler) PageHandler(c *gin.Context) {
	chainID := c.Query("chain")

	block, err := parseBlock(c.Query("block"))
	if err != nil {
		h.renderSelectionError(c, chainID, err)
		return
	}

	sel := port.Selection{
		ChainID: chainID,
		Vault:   c.Query("vault"),
		Block:   block,
		Tab:     c.Query("tab"),
		Refresh: parseFlag(c.Query("refresh")),
	}
	d, err := h.service.Dashboard(c.Request.Context(), sel)
	if err != nil {
		h.renderSelectionError(c, chainID, err)
		return
	}
	c.HTML(http.StatusOK, pageTemplateName, d)
}

func (h *DashboardHandler) renderSelectionError(c *gin.Context, chainID string, err error) {
	card := view.NewErrorCard(err)
	d := &view.Dashboard{
		ChainID: chainID,
		Tab:     view.TabHome,
		Tabs:    view.Tabs(view.TabHome),
		Chains:  view.ChainOptions(h.service.Chains(), chainID),
		Error:   &card,
	}
	c.HTML(http.StatusBadRequest, pageTemplateName, d)
}

// GetChainsHandler lists the configured chains.
func (h *DashboardHandler) GetChainsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, ChainsResponse{Chains: h.service.Chains()})
}

// GetVaultsHandler lists the vaults of ?chain_id.
func (h *DashboardHandler) GetVaultsHandler(c *gin.Context) {
	chainID := c.Query("chain_id")
	options, err := h.service.VaultOptions(c.Request.Context(), chainID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if options == nil {
		options = []view.Option{}
	}
	c.JSON(http.StatusOK, VaultsResponse{ChainID: chainID, Vaults: options})
}

// GetVaultHandler returns the cards of one vault.
func (h *DashboardHandler) GetVaultHandler(c *gin.Context) {
	vault, ok := vaultParam(c)
	if !ok {
		return
	}
	block, err := parseBlock(c.Query("block_number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	chainID := c.Query("chain_id")
	cards, err := h.service.VaultCards(c.Request.Context(), chainID, vault, block, parseFlag(c.Query("refresh")))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, VaultResponse{ChainID: chainID, Vault: vault, BlockNumber: block, Cards: cards})
}

// GetPPSHandler returns the PPS card of one vault.
func (h *DashboardHandler) GetPPSHandler(c *gin.Context) {
	vault, ok := vaultParam(c)
	if !ok {
		return
	}
	block, err := parseBlock(c.Query("block_number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	chainID := c.Query("chain_id")
	card, err := h.service.PPS(c.Request.Context(), chainID, vault, block)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PPSResponse{ChainID: chainID, Vault: vault, BlockNumber: block, PPS: card})
}

// HealthHandler answers 200 when the pricing API is reachable, 503 otherwise.
func (h *DashboardHandler) HealthHandler(c *gin.Context) {
	if !h.service.UpstreamHealthy(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Upstream: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Upstream: "ok"})
}
