package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kairosai/internal/ai"
	"kairosai/internal/app"
	"kairosai/internal/prompt"
	"kairosai/internal/transport/http/response"
)

type GenerationHandler struct {
	generatorService *app.GeneratorService
	factoryService   *app.FactoryService
	exportService    *app.ExportService
}

func NewGenerationHandler(
	generatorService *app.GeneratorService,
	factoryService *app.FactoryService,
	exportService *app.ExportService,
) *GenerationHandler {
	return &GenerationHandler{
		generatorService: generatorService,
		factoryService:   factoryService,
		exportService:    exportService,
	}
}

type GenerateRequest struct {
	Message string `json:"message"`
}

// Generate runs the single-shot generator for the document type in the path.
func (h *GenerationHandler) Generate(c *gin.Context) {
	projectID, err := parseUintParam(c, "id")
	if err != nil || projectID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid project id")
		return
	}
	docType := prompt.DocumentType(c.Param("type"))

	// The body is optional; generation falls back to a default brief.
	var req GenerateRequest
	_ = c.ShouldBindJSON(&req)

	var result *app.GenerateResult
	if docType == prompt.TypeDesign {
		result, err = h.generatorService.GenerateDesign(c.Request.Context(), projectID, req.Message)
	} else {
		result, err = h.generatorService.Generate(c.Request.Context(), projectID, docType, req.Message)
	}
	if err != nil {
		writeGenerationError(c, err)
		return
	}
	response.OK(c, result)
}

type FactoryRequest struct {
	DocumentType     string   `json:"document_type" binding:"required"`
	RawBrief         string   `json:"raw_brief" binding:"required"`
	ContextDocuments []string `json:"context_documents"`
	// UserPreferences is accepted for wire compatibility; the pipeline does
	// not consume it yet.
	UserPreferences map[string]any `json:"user_preferences"`
}

// Factory runs the full document factory pipeline on a raw brief.
func (h *GenerationHandler) Factory(c *gin.Context) {
	projectID, err := parseUintParam(c, "id")
	if err != nil || projectID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid project id")
		return
	}
	var req FactoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "document_type and raw_brief are required")
		return
	}

	result, err := h.factoryService.Process(c.Request.Context(), app.FactoryInput{
		ProjectID:        projectID,
		DocumentType:     prompt.DocumentType(req.DocumentType),
		RawBrief:         req.RawBrief,
		ContextDocuments: req.ContextDocuments,
	})
	if err != nil {
		writeGenerationError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *GenerationHandler) ListGenerated(c *gin.Context) {
	projectID, err := parseUintParam(c, "id")
	if err != nil || projectID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid project id")
		return
	}
	docs, err := h.generatorService.ListGenerated(projectID, c.Query("document_type"))
	if err != nil {
		writeGenerationError(c, err)
		return
	}
	response.OK(c, docs)
}

func (h *GenerationHandler) ListVersions(c *gin.Context) {
	projectID, err := parseUintParam(c, "id")
	if err != nil || projectID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid project id")
		return
	}
	docType := c.Query("document_type")
	if docType == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "document_type is required")
		return
	}
	docs, err := h.generatorService.ListVersions(projectID, docType)
	if err != nil {
		writeGenerationError(c, err)
		return
	}
	response.OK(c, docs)
}

func (h *GenerationHandler) GetGenerated(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid document id")
		return
	}
	doc, err := h.generatorService.GetGenerated(id)
	if err != nil {
		writeGenerationError(c, err)
		return
	}
	response.OK(c, doc)
}

type UpdateGeneratedRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *GenerationHandler) UpdateGenerated(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid document id")
		return
	}
	var req UpdateGeneratedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	doc, err := h.generatorService.UpdateGenerated(id, req.Title, req.Content)
	if err != nil {
		writeGenerationError(c, err)
		return
	}
	response.OK(c, doc)
}

func (h *GenerationHandler) DeleteGenerated(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid document id")
		return
	}
	if err := h.generatorService.DeleteGenerated(id); err != nil {
		writeGenerationError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted_document_id": id})
}

// Export streams a generated document as markdown or plain text.
func (h *GenerationHandler) Export(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid document id")
		return
	}
	file, err := h.exportService.Export(id, c.DefaultQuery("format", "markdown"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrGeneratedDocNotFound):
			response.Error(c, http.StatusNotFound, response.CodeGeneratedNotFound, err.Error())
		case errors.Is(err, app.ErrUnsupportedExportFormat):
			response.Error(c, http.StatusBadRequest, response.CodeUnsupportedFormat, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "export failed")
		}
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func writeGenerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, prompt.ErrUnsupportedDocumentType):
		response.Error(c, http.StatusBadRequest, response.CodeUnsupportedDocType, err.Error())
	case errors.Is(err, app.ErrProjectNotFound):
		response.Error(c, http.StatusNotFound, response.CodeProjectNotFound, err.Error())
	case errors.Is(err, app.ErrGeneratedDocNotFound):
		response.Error(c, http.StatusNotFound, response.CodeGeneratedNotFound, err.Error())
	case errors.Is(err, ai.ErrNotConfigured):
		response.Error(c, http.StatusServiceUnavailable, response.CodeAINotConfigured, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "generation failed")
	}
}
