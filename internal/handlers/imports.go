package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kosarica/supplier-import/internal/discount"
	"github.com/kosarica/supplier-import/internal/importer"
	"github.com/kosarica/supplier-import/internal/parsers/charset"
	"github.com/rs/zerolog"
)

// FileNameHeader carries the original name of an uploaded file
const FileNameHeader = "X-File-Name"

// ImportHandler serves import and preview requests. The request body is the
// raw supplier file.
type ImportHandler struct {
	importer       *importer.Importer
	maxUploadBytes int64
	previewLines   int
	logger         zerolog.Logger
}

func NewImportHandler(im *importer.Importer, maxUploadBytes int64, previewLines int, logger zerolog.Logger) *ImportHandler {
	if previewLines <= 0 {
		previewLines = 20
	}
	return &ImportHandler{
		importer:       im,
		maxUploadBytes: maxUploadBytes,
		previewLines:   previewLines,
		logger:         logger,
	}
}

// Import runs a full import
// @Summary Import a supplier price list
// @Tags imports
// @Accept octet-stream
// @Produce json
// @Param supplierId path string true "Supplier ID"
// @Param mode query string true "Pricing mode" Enums(net_only, calculated, percentage, code_mapping)
// @Param encoding query string false "Force a charset" Enums(utf-8, utf-16le, windows-1250, windows-1252, iso-8859-2)
// @Success 200 {object} importer.Result
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 413 {object} map[string]string "File too large"
// @Failure 422 {object} map[string]string "Unreadable file"
// @Failure 503 {object} map[string]string "Supplier settings unavailable"
// @Router /api/suppliers/{supplierId}/imports [post]
func (h *ImportHandler) Import(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	result, err := h.importer.Import(c.Request.Context(), req)
	if err != nil {
		h.fail(c, req, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Preview runs the pipeline on the first lines of the file
// @Summary Preview a supplier price list
// @Tags imports
// @Accept octet-stream
// @Produce json
// @Param supplierId path string true "Supplier ID"
// @Param mode query string true "Pricing mode"
// @Param lines query int false "Number of data lines" default(20) minimum(1)
// @Success 200 {object} importer.Result
// @Router /api/suppliers/{supplierId}/imports/preview [post]
func (h *ImportHandler) Preview(c *gin.Context) {
	n := h.previewLines
	if raw := c.Query("lines"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lines must be a positive integer"})
			return
		}
		n = parsed
	}

	req, ok := h.bind(c)
	if !ok {
		return
	}
	result, err := h.importer.Preview(c.Request.Context(), req, n)
	if err != nil {
		h.fail(c, req, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ImportHandler) bind(c *gin.Context) (importer.Request, bool) {
	mode, err := discount.ParseMode(c.Query("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return importer.Request{}, false
	}
	enc, err := charset.ParseEncoding(c.Query("encoding"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return importer.Request{}, false
	}

	body := c.Request.Body
	if h.maxUploadBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.maxUploadBytes)
	}
	content, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds upload limit"})
			return importer.Request{}, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return importer.Request{}, false
	}

	fileName := c.GetHeader(FileNameHeader)
	if fileName == "" {
		fileName = "upload"
	}

	return importer.Request{
		SupplierID: c.Param("supplierId"),
		FileName:   fileName,
		Content:    content,
		Mode:       mode,
		Encoding:   enc,
	}, true
}

func (h *ImportHandler) fail(c *gin.Context, req importer.Request, err error) {
	switch {
	case errors.Is(err, importer.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, importer.ErrUndecodable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.Error().Err(err).Str("supplier_id", req.SupplierID).Msg("Import failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "supplier settings unavailable"})
	}
}
