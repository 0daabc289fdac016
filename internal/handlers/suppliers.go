package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kosarica/supplier-import/internal/discount"
	"github.com/kosarica/supplier-import/internal/parserconfig"
	"github.com/kosarica/supplier-import/internal/suppliers"
	"github.com/rs/zerolog"
)

// SettingsStore reads and writes supplier import settings
type SettingsStore interface {
	Get(ctx context.Context, supplierID string) (*suppliers.Metadata, error)
	Upsert(ctx context.Context, m suppliers.Metadata) error
}

// UpdateSettingsRequest replaces the import settings of a supplier
type UpdateSettingsRequest struct {
	Name              string          `json:"name"`
	ParserTemplate    string          `json:"parserTemplate,omitempty"`
	ParserConfig      json.RawMessage `json:"parserConfig,omitempty"`
	DiscountStructure json.RawMessage `json:"discountStructure,omitempty"`
}

// SettingsErrorResponse names the rejected field
type SettingsErrorResponse struct {
	Error string `json:"error" jsonschema:"required"`
	Field string `json:"field,omitempty"`
}

// SupplierSettingsHandler serves supplier settings
type SupplierSettingsHandler struct {
	store    SettingsStore
	registry *parserconfig.Registry
	logger   zerolog.Logger
}

func NewSupplierSettingsHandler(store SettingsStore, registry *parserconfig.Registry, logger zerolog.Logger) *SupplierSettingsHandler {
	if registry == nil {
		registry = parserconfig.DefaultRegistry()
	}
	return &SupplierSettingsHandler{store: store, registry: registry, logger: logger}
}

// Get returns the stored settings of a supplier
// @Summary Get supplier import settings
// @Tags suppliers
// @Produce json
// @Param supplierId path string true "Supplier ID"
// @Success 200 {object} suppliers.Metadata
// @Failure 404 {object} map[string]string "Unknown supplier"
// @Router /api/suppliers/{supplierId}/settings [get]
func (h *SupplierSettingsHandler) Get(c *gin.Context) {
	id := c.Param("supplierId")
	meta, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, suppliers.ErrSupplierNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "supplier not found"})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("supplier_id", id).Msg("Failed to load supplier settings")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "supplier settings unavailable"})
		return
	}
	c.JSON(http.StatusOK, meta)
}

// Put validates and stores the settings of a supplier
// @Summary Replace supplier import settings
// @Tags suppliers
// @Accept json
// @Produce json
// @Param supplierId path string true "Supplier ID"
// @Param request body UpdateSettingsRequest true "Settings"
// @Success 200 {object} suppliers.Metadata
// @Failure 422 {object} SettingsErrorResponse
// @Router /api/suppliers/{supplierId}/settings [put]
func (h *SupplierSettingsHandler) Put(c *gin.Context) {
	id := strings.TrimSpace(c.Param("supplierId"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "supplierId is required"})
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	meta := suppliers.Metadata{
		SupplierID:     id,
		Name:           req.Name,
		ParserTemplate: req.ParserTemplate,
	}

	if req.ParserTemplate != "" {
		if _, ok := h.registry.Lookup(req.ParserTemplate); !ok {
			c.JSON(http.StatusUnprocessableEntity, SettingsErrorResponse{
				Error: "unknown parser template " + req.ParserTemplate,
				Field: "parserTemplate",
			})
			return
		}
	}

	if len(req.ParserConfig) > 0 && string(req.ParserConfig) != "null" {
		pc, err := parserconfig.Decode(req.ParserConfig)
		if err != nil {
			resp := SettingsErrorResponse{Error: err.Error(), Field: "parserConfig"}
			var cfgErr *parserconfig.ConfigError
			if errors.As(err, &cfgErr) && cfgErr.Field != "" {
				resp.Field = "parserConfig." + cfgErr.Field
			}
			c.JSON(http.StatusUnprocessableEntity, resp)
			return
		}
		normalized, err := json.Marshal(pc)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		meta.ParserConfig = normalized
	}

	if len(req.DiscountStructure) > 0 && string(req.DiscountStructure) != "null" {
		structure, err := discount.ParseJSON(req.DiscountStructure)
		if err != nil {
			resp := SettingsErrorResponse{Error: err.Error(), Field: "discountStructure"}
			var vErr *discount.ValidationError
			if errors.As(err, &vErr) && vErr.Field != "" {
				resp.Field = "discountStructure." + vErr.Field
			}
			c.JSON(http.StatusUnprocessableEntity, resp)
			return
		}
		meta.DiscountStructure = structure
	}

	if err := h.store.Upsert(c.Request.Context(), meta); err != nil {
		h.logger.Error().Err(err).Str("supplier_id", id).Msg("Failed to store supplier settings")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "supplier settings unavailable"})
		return
	}

	h.logger.Info().Str("supplier_id", id).Msg("Supplier settings updated")
	c.JSON(http.StatusOK, meta)
}
