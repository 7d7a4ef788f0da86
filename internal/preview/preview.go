// Package preview turns normalized code into an embeddable resource for
// one of three third-party surfaces: a bundler sandbox file set for
// react-mui, a mobile-sandbox embed URL for react-native, and a Dart
// playground embed URL for flutter. The external services are black
// boxes; the only obligation here is producing valid inputs for each.
package preview

import (
	"context"
	"fmt"

	"github.com/hxaxnxa/Image-to-React/internal/types"
)

// Config points the adapter at the external embed endpoints.
type Config struct {
	// SandboxDefineURL, when set, is POSTed react-mui bundles to obtain
	// a hosted sandbox URL. Empty means the bundle file set is returned
	// as-is for a client-side embed.
	SandboxDefineURL string
	SnackEmbedURL    string
	DartPadEmbedURL  string
	// DartPadURLBudget is the longest embed URL the playground host is
	// trusted to accept. Longer sources get the placeholder app.
	DartPadURLBudget int
}

// DefaultConfig matches the public endpoints of the three services.
func DefaultConfig() Config {
	return Config{
		SnackEmbedURL:    "https://snack.expo.dev/embedded",
		DartPadEmbedURL:  "https://dartpad.dev/embed-flutter.html",
		DartPadURLBudget: 7000,
	}
}

// Builder constructs preview resources. It is stateless apart from its
// configuration and the HTTP client used for sandbox registration.
type Builder struct {
	cfg    Config
	client *sandboxClient
}

func NewBuilder(cfg Config) *Builder {
	if cfg.SnackEmbedURL == "" {
		cfg.SnackEmbedURL = DefaultConfig().SnackEmbedURL
	}
	if cfg.DartPadEmbedURL == "" {
		cfg.DartPadEmbedURL = DefaultConfig().DartPadEmbedURL
	}
	if cfg.DartPadURLBudget <= 0 {
		cfg.DartPadURLBudget = DefaultConfig().DartPadURLBudget
	}
	return &Builder{
		cfg:    cfg,
		client: newSandboxClient(cfg.SandboxDefineURL),
	}
}

// Build produces the preview resource for code. Construction itself is
// pure; only the optional react-mui sandbox registration touches the
// network, and its failure is isolated to the preview step.
func (b *Builder) Build(ctx context.Context, code types.NormalizedCode) (types.PreviewResource, error) {
	switch code.Format {
	case types.FormatReactMUI:
		files := BuildSandpackBundle(code)
		if b.cfg.SandboxDefineURL == "" {
			return types.PreviewResource{BundleFiles: files}, nil
		}
		url, err := b.client.Register(ctx, files)
		if err != nil {
			return types.PreviewResource{}, err
		}
		return types.PreviewResource{URL: url, BundleFiles: files}, nil
	case types.FormatReactNative:
		url, err := BuildSnackURL(code, b.cfg.SnackEmbedURL)
		if err != nil {
			return types.PreviewResource{}, err
		}
		return types.PreviewResource{URL: url}, nil
	case types.FormatFlutter:
		return types.PreviewResource{URL: BuildDartPadURL(code, b.cfg.DartPadEmbedURL, b.cfg.DartPadURLBudget)}, nil
	}
	return types.PreviewResource{}, fmt.Errorf("%w: no preview strategy for format %q", types.ErrConfiguration, code.Format)
}
