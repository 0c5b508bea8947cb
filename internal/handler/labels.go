package handler

import (
	"io"
	"net/http"

	"stocklabel/internal/apierror"
	"stocklabel/internal/dto"
	"stocklabel/internal/label"
	"stocklabel/internal/service"

	"github.com/gin-gonic/gin"
)

type LabelsHandler struct {
	templates service.LabelTemplateService
	printing  service.LabelPrintService
}

func NewLabelsHandler(templates service.LabelTemplateService, printing service.LabelPrintService) *LabelsHandler {
	return &LabelsHandler{templates: templates, printing: printing}
}

// CreateTemplate godoc
// @Summary      Create a label template
// @Description  Validates the whole layout and reports every violation at once.
// @Tags         labels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body label.Template true "template layout"
// @Success      201 {object} dto.LabelTemplateResponse
// @Failure      422 {object} apierror.TemplateValidation
// @Router       /v1/label-templates [post]
func (h *LabelsHandler) CreateTemplate(c *gin.Context) {
	var t label.Template
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return
	}
	resp, err := h.templates.Create(c.Request.Context(), &t)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *LabelsHandler) ListTemplates(c *gin.Context) {
	resp, err := h.templates.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LabelsHandler) GetTemplate(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.templates.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LabelsHandler) UpdateTemplate(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var t label.Template
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return
	}
	resp, err := h.templates.Update(c.Request.Context(), id, &t)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LabelsHandler) DeleteTemplate(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	if err := h.templates.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetDefault makes this template the single default.
func (h *LabelsHandler) SetDefault(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	if err := h.templates.SetDefault(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LabelsHandler) DuplicateTemplate(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.templates.Duplicate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ExportTemplate streams the template as a portable JSON document.
func (h *LabelsHandler) ExportTemplate(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	blob, err := h.templates.Export(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="label-template.json"`)
	c.Data(http.StatusOK, "application/json", blob)
}

// ImportTemplate accepts a previously exported document. The imported copy is
// re-validated and never arrives as the default.
func (h *LabelsHandler) ImportTemplate(c *gin.Context) {
	blob, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("unreadable body"))
		return
	}
	resp, err := h.templates.Import(c.Request.Context(), blob)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// PrintLayout godoc
// @Summary      Resolve a print preview layout
// @Description  Returns pixel rectangles at the requested zoom plus the field values for one product/barcode pair.
// @Tags         labels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.PrintLabelRequest true "print request"
// @Success      200 {object} dto.PrintLayoutResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/labels/layout [post]
func (h *LabelsHandler) PrintLayout(c *gin.Context) {
	var req dto.PrintLabelRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.printing.Layout(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Print queues PDF generation on the worker pool.
func (h *LabelsHandler) Print(c *gin.Context) {
	var req dto.PrintLabelRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.printing.EnqueuePrint(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"queued": true})
}
