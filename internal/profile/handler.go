package profile

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/extract"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/util"
)

const maxResumeUploadBytes = 5 << 20

var allowedResumeContentTypes = map[string]struct{}{
	"application/pdf": {},
	"application/zip": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile/template", h.getTemplate)
	rg.PUT("/profile/template", h.putTemplate)
	rg.POST("/profile/resume", h.uploadResume)
}

type templateBody struct {
	Template string `json:"template"`
}

func (h *Handler) getTemplate(c *gin.Context) {
	respond.OK(c, templateBody{Template: h.svc.Template()})
}

func (h *Handler) putTemplate(c *gin.Context) {
	var req templateBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := h.svc.SetTemplate(req.Template); err != nil {
		if errors.Is(err, ErrInvalidTemplate) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		telemetry.Error("profile.template.save_failed", map[string]any{
			"err":        err.Error(),
			"request_id": c.GetString("requestId"),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save template", nil)
		return
	}
	respond.OK(c, templateBody{Template: h.svc.Template()})
}

type uploadResumeResponse struct {
	FileName   string `json:"fileName"`
	Characters int    `json:"characters"`
}

func (h *Handler) uploadResume(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if fileHeader.Size <= 0 || fileHeader.Size > maxResumeUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file size exceeds limit", nil)
		return
	}

	contentType := strings.TrimSpace(strings.Split(fileHeader.Header.Get("Content-Type"), ";")[0])
	if _, ok := allowedResumeContentTypes[strings.ToLower(contentType)]; !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "contentType is not allowed", nil)
		return
	}

	sanitized, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid fileName", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxResumeUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}
	if len(data) > maxResumeUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file size exceeds limit", nil)
		return
	}

	text, err := extract.Text(data, contentType, sanitized)
	if err != nil {
		telemetry.Warn("profile.resume.extract_failed", map[string]any{
			"err":        err.Error(),
			"fileName":   sanitized,
			"mimeType":   contentType,
			"request_id": c.GetString("requestId"),
		})
		respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "could not extract text from the uploaded resume", nil)
		return
	}
	if strings.TrimSpace(text) == "" {
		respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "uploaded resume contains no extractable text", nil)
		return
	}

	h.svc.SetSourceResumeText(text)
	telemetry.Info("profile.resume.imported", map[string]any{
		"fileName":   sanitized,
		"characters": len(text),
		"request_id": c.GetString("requestId"),
	})

	respond.OK(c, uploadResumeResponse{FileName: sanitized, Characters: len(text)})
}
