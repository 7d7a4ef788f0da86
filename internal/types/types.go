package types

import (
	"errors"
	"fmt"
)

// CodeFormat selects the target framework for generation, normalization
// and preview. The three values are the only ones the pipeline knows.
type CodeFormat string

const (
	FormatReactMUI    CodeFormat = "react-mui"
	FormatReactNative CodeFormat = "react-native"
	FormatFlutter     CodeFormat = "flutter"
)

// ParseCodeFormat validates a client-supplied format string.
// An unknown value is a configuration error, not something to retry.
func ParseCodeFormat(s string) (CodeFormat, error) {
	switch CodeFormat(s) {
	case FormatReactMUI, FormatReactNative, FormatFlutter:
		return CodeFormat(s), nil
	}
	return "", fmt.Errorf("%w: unknown code format %q", ErrConfiguration, s)
}

// DeviceType steers layout instructions in the generation prompt.
type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
)

// ParseDeviceType validates a client-supplied device type. Empty defaults
// to desktop, matching the upload UI's initial state.
func ParseDeviceType(s string) (DeviceType, error) {
	switch DeviceType(s) {
	case DeviceDesktop, DeviceMobile:
		return DeviceType(s), nil
	case "":
		return DeviceDesktop, nil
	}
	return "", fmt.Errorf("%w: unknown device type %q", ErrConfiguration, s)
}

// GenerationRequest is the immutable input to the prompt builder,
// created per user action and discarded after use.
type GenerationRequest struct {
	UIDescription string
	UserPrompt    string
	DeviceType    DeviceType
	CodeFormat    CodeFormat
}

// RawModelOutput wraps untrusted model text. It may contain markdown
// fences, inconsistent component names, missing or duplicated
// import/export statements, or be entirely unusable.
type RawModelOutput struct {
	Text string
}

// NormalizedCode is a renderable unit for one preview surface. For react
// formats it contains exactly one top-level component named per the
// format's convention and exactly one export; for flutter exactly one
// main() and the Material import. Fallback marks the deterministic
// placeholder substituted when the raw text could not be coerced.
type NormalizedCode struct {
	Text          string     `json:"text"`
	Format        CodeFormat `json:"format"`
	ComponentName string     `json:"componentName"`
	Fallback      bool       `json:"fallback"`
}

// PreviewResource is an embeddable preview: either a hosted URL or an
// in-memory file set for a bundler sandbox. Rebuilt from scratch on
// every request; never cached.
type PreviewResource struct {
	URL         string            `json:"url,omitempty"`
	BundleFiles map[string]string `json:"bundleFiles,omitempty"`
}

// GeneratedFile is one file of a published project.
type GeneratedFile struct {
	Filename string `json:"filename"`
	Type     string `json:"type"` // e.g., "js", "dart", "json"
	Content  string `json:"content"`
}

// Error kinds surfaced to the API layer. Each pipeline stage wraps the
// errors it can add context to with one of these sentinels; fallback
// substitution is not an error and carries no sentinel.
var (
	// ErrConfiguration marks bad enums or a missing API key. Fatal for
	// the operation, never retried.
	ErrConfiguration = errors.New("configuration error")

	// ErrModelInvocation covers network, auth, rate-limit and
	// empty-completion failures from the model endpoint.
	ErrModelInvocation = errors.New("model invocation failed")

	// ErrPreviewUnavailable marks a failed external bundling or embed
	// registration call. Only the preview step is affected; generated
	// code stays valid.
	ErrPreviewUnavailable = errors.New("preview unavailable")
)
