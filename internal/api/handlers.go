package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hxaxnxa/Image-to-React/internal/ai"
	"github.com/hxaxnxa/Image-to-React/internal/preview"
	"github.com/hxaxnxa/Image-to-React/internal/publish"
	"github.com/hxaxnxa/Image-to-React/internal/store"
	"github.com/hxaxnxa/Image-to-React/internal/types"
	"github.com/hxaxnxa/Image-to-React/pkg/logger"
)

// maxUploadBytes caps screenshot size; anything larger is rejected
// before it reaches the vision model.
const maxUploadBytes = 10 << 20

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	generator *ai.Generator
	uploads   store.Store
	previews  *preview.Builder
	publisher *publish.Publisher
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(gen *ai.Generator, uploads store.Store, previews *preview.Builder, publisher *publish.Publisher) *APIHandler {
	return &APIHandler{
		generator: gen,
		uploads:   uploads,
		previews:  previews,
		publisher: publisher,
	}
}

// --- Structs for API Requests/Responses ---

type UploadResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}

type UploadSummary struct {
	ID          string   `json:"id"`
	Filename    string   `json:"filename"`
	Described   bool     `json:"described"`
	Generated   []string `json:"generated"`
	CreatedAt   int64    `json:"createdAt"`
	Description string   `json:"description,omitempty"`
}

type DescribeRequest struct {
	DeviceType string `json:"deviceType"`
}

type DescribeResponse struct {
	Description string `json:"description"`
}

type GenerateCodeRequest struct {
	UIDescription string `json:"uiDescription"` // overrides the stored description when set
	UserPrompt    string `json:"userPrompt"`
	DeviceType    string `json:"deviceType"`
	CodeFormat    string `json:"codeFormat" binding:"required"`
}

type GenerateCodeResponse struct {
	Code          string `json:"code"`
	ComponentName string `json:"componentName"`
	Fallback      bool   `json:"fallback"`
	Warning       string `json:"warning,omitempty"`
}

type GenerateAllRequest struct {
	UserPrompt string `json:"userPrompt"`
	DeviceType string `json:"deviceType"`
	CodeFormat string `json:"codeFormat" binding:"required"`
}

type GenerateAllResult struct {
	ID       string `json:"id"`
	Progress int    `json:"progress"`
	Total    int    `json:"total"`
	Fallback bool   `json:"fallback,omitempty"`
	Error    string `json:"error,omitempty"`
}

type PreviewRequest struct {
	CodeFormat string `json:"codeFormat" binding:"required"`
}

type PublishRequest struct {
	CodeFormat string `json:"codeFormat" binding:"required"`
}

type PublishedFile struct {
	Filename string `json:"filename"`
	Type     string `json:"type"`
}

type PublishResponse struct {
	Files []PublishedFile `json:"files"`
}

// --- API Handlers ---

// POST /api/uploads
func (h *APIHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request must include an 'image' form file"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image exceeds the 10 MiB upload limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded image"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil || len(image) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded image"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(image)
	}

	upload := &store.Upload{
		ID:        uuid.New().String(),
		Filename:  fileHeader.Filename,
		MimeType:  mimeType,
		Image:     image,
		CreatedAt: time.Now(),
	}
	if err := h.uploads.Put(upload); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}

	logger.Infof("Stored upload %s (%s, %d bytes)", upload.ID, upload.Filename, len(image))
	c.JSON(http.StatusCreated, UploadResponse{ID: upload.ID, Filename: upload.Filename})
}

// GET /api/uploads
func (h *APIHandler) ListUploads(c *gin.Context) {
	uploads, err := h.uploads.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list uploads"})
		return
	}

	summaries := make([]UploadSummary, 0, len(uploads))
	for _, u := range uploads {
		formats := make([]string, 0, len(u.Generated))
		for f := range u.Generated {
			formats = append(formats, string(f))
		}
		summaries = append(summaries, UploadSummary{
			ID:          u.ID,
			Filename:    u.Filename,
			Described:   u.Description != "",
			Generated:   formats,
			CreatedAt:   u.CreatedAt.Unix(),
			Description: u.Description,
		})
	}
	c.JSON(http.StatusOK, summaries)
}

// POST /api/uploads/:id/describe
func (h *APIHandler) DescribeImage(c *gin.Context) {
	var req DescribeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	device, err := types.ParseDeviceType(req.DeviceType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upload, err := h.uploads.Get(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": "Upload not found"})
		return
	}

	description, err := h.generator.DescribeImage(c.Request.Context(), upload.Image, upload.MimeType, device)
	if err != nil {
		logger.Errorf("Describing upload %s failed: %v", upload.ID, err)
		c.JSON(statusFor(err), gin.H{"error": "Failed to describe image"})
		return
	}

	if err := h.uploads.SetDescription(upload.ID, description); err != nil {
		c.JSON(statusFor(err), gin.H{"error": "Upload disappeared while describing"})
		return
	}
	c.JSON(http.StatusOK, DescribeResponse{Description: description})
}

// POST /api/uploads/:id/generate
func (h *APIHandler) GenerateCode(c *gin.Context) {
	var req GenerateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	genReq, upload, err := h.buildGenerationRequest(c.Param("id"), req.UIDescription, req.UserPrompt, req.DeviceType, req.CodeFormat)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	code, err := h.generator.GenerateCode(c.Request.Context(), genReq)
	if err != nil {
		logger.Errorf("Generating %s code for upload %s failed: %v", genReq.CodeFormat, upload.ID, err)
		c.JSON(statusFor(err), gin.H{"error": "Code generation failed"})
		return
	}

	if err := h.uploads.SetGenerated(upload.ID, code); err != nil {
		c.JSON(statusFor(err), gin.H{"error": "Upload disappeared while generating"})
		return
	}

	resp := GenerateCodeResponse{
		Code:          code.Text,
		ComponentName: code.ComponentName,
		Fallback:      code.Fallback,
	}
	if code.Fallback {
		resp.Warning = "The model output could not be normalized; a placeholder component was substituted."
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/uploads/generate-all
//
// Iterates uploads sequentially so the model endpoint sees one request
// at a time and the progress counter stays monotonic. One image's
// failure does not stop the rest.
func (h *APIHandler) GenerateAll(c *gin.Context) {
	var req GenerateAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	uploads, err := h.uploads.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list uploads"})
		return
	}

	results := make([]GenerateAllResult, 0, len(uploads))
	for i, u := range uploads {
		result := GenerateAllResult{ID: u.ID, Progress: i + 1, Total: len(uploads)}

		genReq, _, err := h.buildGenerationRequest(u.ID, "", req.UserPrompt, req.DeviceType, req.CodeFormat)
		if err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		code, err := h.generator.GenerateCode(c.Request.Context(), genReq)
		if err != nil {
			logger.Errorf("Generate-all: upload %s failed: %v", u.ID, err)
			result.Error = "code generation failed"
			results = append(results, result)
			continue
		}
		if err := h.uploads.SetGenerated(u.ID, code); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.Fallback = code.Fallback
		results = append(results, result)
	}
	c.JSON(http.StatusOK, results)
}

// POST /api/uploads/:id/preview
func (h *APIHandler) BuildPreview(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	code, err := h.generatedCode(c.Param("id"), req.CodeFormat)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	resource, err := h.previews.Build(c.Request.Context(), code)
	if err != nil {
		logger.Errorf("Preview for upload %s (%s) failed: %v", c.Param("id"), code.Format, err)
		// Isolated to the preview step: the generated code stays valid.
		c.JSON(statusFor(err), gin.H{"error": "Preview is unavailable; the generated code is unaffected"})
		return
	}
	c.JSON(http.StatusOK, resource)
}

// POST /api/uploads/:id/publish
func (h *APIHandler) PublishCode(c *gin.Context) {
	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	code, err := h.generatedCode(c.Param("id"), req.CodeFormat)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	var bundle map[string]string
	if code.Format == types.FormatReactMUI {
		bundle = preview.BuildSandpackBundle(code)
	}

	written, err := h.publisher.PublishFiles(c.Param("id"), publish.FilesFor(code, bundle))
	if err != nil {
		logger.Errorf("Publishing upload %s failed: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish generated code"})
		return
	}

	resp := PublishResponse{Files: make([]PublishedFile, 0, len(written))}
	for _, f := range written {
		resp.Files = append(resp.Files, PublishedFile{Filename: f.Filename, Type: f.Type})
	}
	c.JSON(http.StatusOK, resp)
}

// DELETE /api/uploads/:id
func (h *APIHandler) DeleteUpload(c *gin.Context) {
	if err := h.uploads.Delete(c.Param("id")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": "Upload not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// --- helpers ---

// buildGenerationRequest resolves the description (explicit override or
// stored) and validates the enums.
func (h *APIHandler) buildGenerationRequest(id, uiDescription, userPrompt, deviceType, codeFormat string) (types.GenerationRequest, *store.Upload, error) {
	format, err := types.ParseCodeFormat(codeFormat)
	if err != nil {
		return types.GenerationRequest{}, nil, err
	}
	device, err := types.ParseDeviceType(deviceType)
	if err != nil {
		return types.GenerationRequest{}, nil, err
	}

	upload, err := h.uploads.Get(id)
	if err != nil {
		return types.GenerationRequest{}, nil, err
	}

	description := uiDescription
	if description == "" {
		description = upload.Description
	}
	if description == "" {
		return types.GenerationRequest{}, nil, errors.New("upload has no description yet; call describe first or supply uiDescription")
	}

	return types.GenerationRequest{
		UIDescription: description,
		UserPrompt:    userPrompt,
		DeviceType:    device,
		CodeFormat:    format,
	}, upload, nil
}

func (h *APIHandler) generatedCode(id, codeFormat string) (types.NormalizedCode, error) {
	format, err := types.ParseCodeFormat(codeFormat)
	if err != nil {
		return types.NormalizedCode{}, err
	}
	upload, err := h.uploads.Get(id)
	if err != nil {
		return types.NormalizedCode{}, err
	}
	code, ok := upload.Generated[format]
	if !ok {
		return types.NormalizedCode{}, errors.New("no generated code for format " + codeFormat + "; generate first")
	}
	return code, nil
}

// statusFor maps pipeline error kinds onto HTTP statuses. Unrecognized
// errors are client errors here: the helpers only return sentinel kinds
// or precondition messages.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrUploadNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrModelInvocation):
		return http.StatusBadGateway
	case errors.Is(err, types.ErrPreviewUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusConflict
	}
}
