package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kosarica/supplier-import/internal/parserconfig"
)

// TemplateInfo describes one parser template
type TemplateInfo struct {
	Name   string                    `json:"name" jsonschema:"required"`
	Format parserconfig.Format       `json:"format" jsonschema:"required,enum=delimited,enum=fixed_column"`
	Config parserconfig.ParserConfig `json:"config" jsonschema:"required"`
}

// ListTemplatesResponse lists the built-in parser templates
type ListTemplatesResponse struct {
	Templates []TemplateInfo `json:"templates" jsonschema:"required"`
}

// ListTemplates returns a handler listing the templates of registry
// @Summary List parser templates
// @Tags templates
// @Produce json
// @Success 200 {object} ListTemplatesResponse
// @Router /api/templates [get]
func ListTemplates(registry *parserconfig.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := ListTemplatesResponse{Templates: make([]TemplateInfo, 0)}
		for _, name := range registry.Names() {
			cfg, _ := registry.Lookup(name)
			resp.Templates = append(resp.Templates, TemplateInfo{Name: name, Format: cfg.Format(), Config: cfg})
		}
		c.JSON(http.StatusOK, resp)
	}
}
