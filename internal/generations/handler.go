package generations

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resume-builder/internal/latex"
	"resume-builder/internal/llm"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
)

var artifactContentTypes = map[string]string{
	ArtifactResumePDF:      "application/pdf",
	ArtifactResumeTex:      "application/x-tex",
	ArtifactCoverLetterPDF: "application/pdf",
	ArtifactCoverLetterTex: "application/x-tex",
}

type Handler struct {
	svc   *Service
	store object.ObjectStore
}

func NewHandler(svc *Service, store object.ObjectStore) *Handler {
	return &Handler{svc: svc, store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generations", h.create)
	rg.GET("/generations", h.list)
	rg.GET("/generations/:id/artifacts/:kind", h.artifact)
}

func (h *Handler) create(c *gin.Context) {
	var req createGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.svc.Generate(c.Request.Context(), Request{
		Company:         req.Company,
		JobDescription:  req.JobDescription,
		WantCoverLetter: req.WantCoverLetter,
	})
	if result.ID != "" {
		c.Set("generationId", result.ID)
	}
	if err != nil {
		h.writeGenerateError(c, result, err)
		return
	}

	respond.JSON(c, http.StatusCreated, toGenerationResponse(result))
}

func (h *Handler) writeGenerateError(c *gin.Context, result Result, err error) {
	switch {
	case errors.Is(err, llm.ErrCompanyRequired),
		errors.Is(err, llm.ErrJobDescriptionRequired),
		errors.Is(err, ErrJobDescriptionTooLong):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, latex.ErrCompilerNotFound):
		respond.Error(c, http.StatusInternalServerError, "compiler_not_found", err.Error(), nil)
	case errors.Is(err, ErrCompileFailed):
		respond.Error(c, http.StatusUnprocessableEntity, "compile_failed", "generated LaTeX did not compile", gin.H{
			"generationId": result.ID,
			"latexSource":  result.LatexSource,
			"compilerLog":  result.CompilerLog,
		})
	case errors.Is(err, ErrProvider), errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusBadGateway, "provider_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "generation failed", nil)
	}
}

func (h *Handler) list(c *gin.Context) {
	records, err := h.svc.History(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list runs", nil)
		return
	}
	if records == nil {
		records = []RunRecord{}
	}
	respond.OK(c, historyResponse{Runs: records})
}

func (h *Handler) artifact(c *gin.Context) {
	id := c.Param("id")
	kind := c.Param("kind")

	contentType, ok := artifactContentTypes[kind]
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "unknown artifact", nil)
		return
	}
	if _, err := uuid.Parse(id); err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "unknown generation", nil)
		return
	}

	rc, err := h.store.Open(c.Request.Context(), ArtifactKey(id, kind))
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "artifact not found", nil)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", `inline; filename="`+kind+`"`)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		telemetry.Warn("generation.artifact_stream_failed", map[string]any{
			"generation_id": id,
			"artifact":      kind,
			"err":           err.Error(),
		})
	}
}
