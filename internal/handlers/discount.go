package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kosarica/supplier-import/internal/discount"
)

// maxDiscountBody bounds discount structure documents
const maxDiscountBody = 1 << 20

// ValidateDiscountResponse is the outcome of a discount structure validation
type ValidateDiscountResponse struct {
	Valid     bool               `json:"valid" jsonschema:"required"`
	Type      discount.Type      `json:"type,omitempty"`
	Structure discount.Structure `json:"structure,omitempty"`
	Field     string             `json:"field,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// ValidateDiscount checks a discount structure document
// @Summary Validate a discount structure
// @Tags discount
// @Accept json
// @Produce json
// @Success 200 {object} ValidateDiscountResponse
// @Failure 422 {object} ValidateDiscountResponse
// @Router /api/discount-structures/validate [post]
func ValidateDiscount(c *gin.Context) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxDiscountBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	structure, err := discount.ParseJSON(data)
	if err != nil {
		resp := ValidateDiscountResponse{Error: err.Error()}
		var vErr *discount.ValidationError
		if errors.As(err, &vErr) {
			resp.Field = vErr.Field
		}
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	c.JSON(http.StatusOK, ValidateDiscountResponse{
		Valid:     true,
		Type:      structure.Type(),
		Structure: structure,
	})
}
