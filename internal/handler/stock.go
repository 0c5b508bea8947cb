package handler

import (
	"net/http"

	"stocklabel/internal/apierror"
	"stocklabel/internal/dto"
	"stocklabel/internal/service"

	"github.com/gin-gonic/gin"
)

type StockHandler struct{ svc service.StockEntryService }

func NewStockHandler(svc service.StockEntryService) *StockHandler {
	return &StockHandler{svc: svc}
}

// CreateEntry godoc
// @Summary      Register a stock entry
// @Description  Creates one movement and mints one barcode per physical unit: quantity N pieces yields N codes, each entered length yields one code.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateStockEntryRequest true "entry detail"
// @Success      201  {object} dto.StockEntryResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/stock/entries [post]
func (h *StockHandler) CreateEntry(c *gin.Context) {
	var req dto.CreateStockEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateEntry(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *StockHandler) ListMovements(c *gin.Context) {
	var filter dto.MovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetBarcode godoc
// @Summary      Look up one barcode
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "6-digit code"
// @Success      200 {object} dto.BarcodeResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/barcodes/{code} [get]
func (h *StockHandler) GetBarcode(c *gin.Context) {
	code := c.Param("code")
	resp, err := h.svc.GetBarcode(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) MarkUsed(c *gin.Context) {
	code := c.Param("code")
	var req struct {
		Used bool `json:"used"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return
	}
	if err := h.svc.MarkUsed(c.Request.Context(), code, req.Used); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
