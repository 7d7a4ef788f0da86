package utils

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ShouldRetry reports whether a model invocation error looks transient
// enough for the single bounded retry.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "rate limit") ||
		strings.Contains(errMsg, "500 internal server error") ||
		strings.Contains(errMsg, "502 bad gateway") ||
		strings.Contains(errMsg, "503 service unavailable") ||
		strings.Contains(errMsg, "504 gateway timeout") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "connection reset by peer") {
		return true
	}
	var openAIErr *openai.APIError
	if errors.As(err, &openAIErr) {
		if openAIErr.HTTPStatusCode >= 500 || openAIErr.HTTPStatusCode == 429 {
			return true
		}
	}
	return false
}

// DetermineFileType provides publish metadata when the extension is the
// only clue.
func DetermineFileType(filename string) string {
	lowerFilename := strings.ToLower(filename)
	switch filepath.Ext(lowerFilename) {
	case ".html":
		return "HTML"
	case ".css":
		return "CSS"
	case ".js":
		return "JavaScript"
	case ".jsx":
		return "JSX"
	case ".ts":
		return "TypeScript"
	case ".tsx":
		return "TSX"
	case ".dart":
		return "Dart"
	case ".json":
		return "JSON"
	case ".md":
		return "Markdown"
	case ".yaml", ".yml":
		return "YAML"
	default:
		return "Unknown"
	}
}
