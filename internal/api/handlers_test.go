package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hxaxnxa/Image-to-React/internal/ai"
	"github.com/hxaxnxa/Image-to-React/internal/ai/prompts"
	"github.com/hxaxnxa/Image-to-React/internal/preview"
	"github.com/hxaxnxa/Image-to-React/internal/publish"
	"github.com/hxaxnxa/Image-to-React/internal/store"
)

const stubDescription = "A login form with email and password fields and a submit button."

const stubComponent = "```jsx\nfunction GeneratedComponent(){return <div>form</div>;}\nexport default GeneratedComponent;\n```"

// stubModel answers vision calls with a fixed description and code calls
// with a fenced component, so the full normalizer path runs in-process.
func stubModel(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	text := stubComponent
	if len(req.Messages) > 0 && req.Messages[0].Content == prompts.DescriptionSystemPrompt {
		text = stubDescription
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: text}},
		},
	}, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewAPIHandler(
		ai.NewGeneratorWithCompletion(stubModel),
		store.NewMemoryStore(),
		preview.NewBuilder(preview.Config{}),
		publish.NewPublisher(t.TempDir()),
	)
	router := gin.New()
	RegisterRoutes(router, h)
	return router
}

func uploadImage(t *testing.T, router *gin.Engine) string {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", "screenshot.png")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a})
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID == "" {
		t.Fatal("upload response has no id")
	}
	return resp.ID
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUploadRejectsMissingFile(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/uploads", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDescribeThenGenerateFlow(t *testing.T) {
	router := newTestRouter(t)
	id := uploadImage(t, router)

	rec := postJSON(t, router, "/api/uploads/"+id+"/describe", DescribeRequest{DeviceType: "desktop"})
	if rec.Code != http.StatusOK {
		t.Fatalf("describe status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var desc DescribeResponse
	json.Unmarshal(rec.Body.Bytes(), &desc)
	if desc.Description != stubDescription {
		t.Errorf("description = %q", desc.Description)
	}

	rec = postJSON(t, router, "/api/uploads/"+id+"/generate", GenerateCodeRequest{CodeFormat: "react-mui"})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var gen GenerateCodeResponse
	json.Unmarshal(rec.Body.Bytes(), &gen)
	if gen.Fallback {
		t.Error("stub component should normalize cleanly")
	}
	if strings.Contains(gen.Code, "```") {
		t.Error("fences survived into the response")
	}
	if strings.Count(gen.Code, "export default GeneratedComponent;") != 1 {
		t.Errorf("generated code = %q", gen.Code)
	}
}

func TestGenerateWithoutDescription(t *testing.T) {
	router := newTestRouter(t)
	id := uploadImage(t, router)

	rec := postJSON(t, router, "/api/uploads/"+id+"/generate", GenerateCodeRequest{CodeFormat: "react-mui"})
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 before describe", rec.Code)
	}

	// An explicit description bypasses the describe step.
	rec = postJSON(t, router, "/api/uploads/"+id+"/generate", GenerateCodeRequest{
		UIDescription: "A pricing table with three plans",
		CodeFormat:    "react-mui",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("status with explicit description = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	router := newTestRouter(t)
	id := uploadImage(t, router)

	rec := postJSON(t, router, "/api/uploads/"+id+"/generate", GenerateCodeRequest{
		UIDescription: "A form",
		CodeFormat:    "svelte",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGenerateUnknownUpload(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/uploads/nope/generate", GenerateCodeRequest{
		UIDescription: "A form",
		CodeFormat:    "react-mui",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestPreviewRequiresGeneratedCode(t *testing.T) {
	router := newTestRouter(t)
	id := uploadImage(t, router)

	rec := postJSON(t, router, "/api/uploads/"+id+"/preview", PreviewRequest{CodeFormat: "react-mui"})
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 before generate", rec.Code)
	}
}

func TestPreviewReturnsBundle(t *testing.T) {
	router := newTestRouter(t)
	id := uploadImage(t, router)

	postJSON(t, router, "/api/uploads/"+id+"/generate", GenerateCodeRequest{
		UIDescription: "A form",
		CodeFormat:    "react-mui",
	})

	rec := postJSON(t, router, "/api/uploads/"+id+"/preview", PreviewRequest{CodeFormat: "react-mui"})
	if rec.Code != http.StatusOK {
		t.Fatalf("preview status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resource struct {
		BundleFiles map[string]string `json:"bundleFiles"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resource)
	for _, name := range []string{"/package.json", "/index.js", "/GeneratedComponent.js"} {
		if _, ok := resource.BundleFiles[name]; !ok {
			t.Errorf("bundle missing %s", name)
		}
	}
}

func TestPublishWritesFiles(t *testing.T) {
	router := newTestRouter(t)
	id := uploadImage(t, router)

	postJSON(t, router, "/api/uploads/"+id+"/generate", GenerateCodeRequest{
		UIDescription: "A form",
		CodeFormat:    "flutter",
	})

	rec := postJSON(t, router, "/api/uploads/"+id+"/publish", PublishRequest{CodeFormat: "flutter"})
	if rec.Code != http.StatusOK {
		t.Fatalf("publish status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp PublishResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Files) != 1 || resp.Files[0].Filename != "lib/main.dart" {
		t.Errorf("published files = %+v", resp.Files)
	}
}

func TestGenerateAll(t *testing.T) {
	router := newTestRouter(t)
	withDesc := uploadImage(t, router)
	withoutDesc := uploadImage(t, router)

	postJSON(t, router, "/api/uploads/"+withDesc+"/describe", DescribeRequest{})

	rec := postJSON(t, router, "/api/uploads/generate-all", GenerateAllRequest{CodeFormat: "react-mui"})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate-all status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var results []GenerateAllResult
	json.Unmarshal(rec.Body.Bytes(), &results)
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}

	byID := map[string]GenerateAllResult{}
	for i, r := range results {
		if r.Progress != i+1 || r.Total != 2 {
			t.Errorf("result %d progress = %d/%d", i, r.Progress, r.Total)
		}
		byID[r.ID] = r
	}
	if byID[withDesc].Error != "" {
		t.Errorf("described upload failed: %s", byID[withDesc].Error)
	}
	if byID[withoutDesc].Error == "" {
		t.Error("undescribed upload should report the missing description")
	}
}

func TestListUploads(t *testing.T) {
	router := newTestRouter(t)
	id := uploadImage(t, router)
	postJSON(t, router, "/api/uploads/"+id+"/describe", DescribeRequest{})
	postJSON(t, router, "/api/uploads/"+id+"/generate", GenerateCodeRequest{CodeFormat: "react-native"})

	req := httptest.NewRequest(http.MethodGet, "/api/uploads", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	var summaries []UploadSummary
	json.Unmarshal(rec.Body.Bytes(), &summaries)
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}
	s := summaries[0]
	if !s.Described {
		t.Error("summary not marked described")
	}
	if len(s.Generated) != 1 || s.Generated[0] != "react-native" {
		t.Errorf("generated formats = %v", s.Generated)
	}
}

func TestDeleteUpload(t *testing.T) {
	router := newTestRouter(t)
	id := uploadImage(t, router)

	req := httptest.NewRequest(http.MethodDelete, "/api/uploads/"+id, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d", rec.Code)
	}
}
