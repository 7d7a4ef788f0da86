package utils

import (
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("rate limit exceeded"), true},
		{errors.New("request failed: 503 Service Unavailable"), true},
		{errors.New("context deadline exceeded (timeout)"), true},
		{errors.New("invalid api key"), false},
		{&openai.APIError{HTTPStatusCode: 500}, true},
		{&openai.APIError{HTTPStatusCode: 429}, true},
		{&openai.APIError{HTTPStatusCode: 400}, false},
	}
	for _, tt := range tests {
		if got := ShouldRetry(tt.err); got != tt.want {
			t.Errorf("ShouldRetry(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestDetermineFileType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"GeneratedComponent.js", "JavaScript"},
		{"lib/main.dart", "Dart"},
		{"package.json", "JSON"},
		{"index.html", "HTML"},
		{"pubspec.YAML", "YAML"},
		{"LICENSE", "Unknown"},
	}
	for _, tt := range tests {
		if got := DetermineFileType(tt.filename); got != tt.want {
			t.Errorf("DetermineFileType(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
