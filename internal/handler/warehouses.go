package handler

import (
	"net/http"

	"stocklabel/internal/dto"
	"stocklabel/internal/service"

	"github.com/gin-gonic/gin"
)

type WarehousesHandler struct{ svc service.WarehouseService }

func NewWarehousesHandler(svc service.WarehouseService) *WarehousesHandler {
	return &WarehousesHandler{svc: svc}
}

func (h *WarehousesHandler) Create(c *gin.Context) {
	var req dto.CreateWarehouseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *WarehousesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WarehousesHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WarehousesHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateWarehouseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WarehousesHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WarehousesHandler) AddShelf(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req dto.AddShelfRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddShelf(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *WarehousesHandler) DeleteShelf(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	shelfID, ok := parseUUID(c, "shelfId")
	if !ok {
		return
	}
	if err := h.svc.DeleteShelf(c.Request.Context(), id, shelfID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
