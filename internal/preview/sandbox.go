package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hxaxnxa/Image-to-React/internal/types"
	"github.com/hxaxnxa/Image-to-React/pkg/logger"
)

// sandboxClient posts a bundle file set to the bundler service's define
// endpoint and returns the hosted sandbox URL. Any failure surfaces as
// ErrPreviewUnavailable so the caller can isolate it to the preview
// step.
type sandboxClient struct {
	defineURL  string
	httpClient *http.Client
}

func newSandboxClient(defineURL string) *sandboxClient {
	return &sandboxClient{
		defineURL: defineURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sandboxDefineRequest struct {
	Files map[string]sandboxDefineFile `json:"files"`
}

type sandboxDefineFile struct {
	Content string `json:"content"`
}

type sandboxDefineResponse struct {
	SandboxID string `json:"sandbox_id"`
	URL       string `json:"url"`
}

// Register submits the bundle and returns the embed URL the service
// assigned. It must only be called when a define endpoint is
// configured.
func (c *sandboxClient) Register(ctx context.Context, files map[string]string) (string, error) {
	body := sandboxDefineRequest{Files: make(map[string]sandboxDefineFile, len(files))}
	for name, content := range files {
		body.Files[name] = sandboxDefineFile{Content: content}
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%w: marshaling define request: %v", types.ErrPreviewUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.defineURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("%w: building define request: %v", types.ErrPreviewUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	logger.Debugf("Registering %d bundle files with sandbox service at %s", len(files), c.defineURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: sandbox define call failed: %v", types.ErrPreviewUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		logger.Warnf("Sandbox define returned %s: %s", resp.Status, string(respBody))
		return "", fmt.Errorf("%w: sandbox define returned %s", types.ErrPreviewUnavailable, resp.Status)
	}

	var defineResp sandboxDefineResponse
	if err := json.NewDecoder(resp.Body).Decode(&defineResp); err != nil {
		return "", fmt.Errorf("%w: decoding define response: %v", types.ErrPreviewUnavailable, err)
	}
	if defineResp.URL != "" {
		return defineResp.URL, nil
	}
	if defineResp.SandboxID == "" {
		return "", fmt.Errorf("%w: define response missing sandbox id", types.ErrPreviewUnavailable)
	}
	return "https://codesandbox.io/embed/" + defineResp.SandboxID, nil
}
