// Package normalize coerces untrusted model output into a minimally
// valid, renderable code unit for one of the three target preview
// surfaces. The transform is an explicit sequence of named passes
// (fence strip, import reconcile, name canonicalize, dedupe, validate)
// instead of one pile of chained regexes, so each pass is independently
// testable and the whole pipeline is idempotent: running Normalize on
// its own output is a no-op.
package normalize

import (
	"strings"

	"github.com/hxaxnxa/Image-to-React/internal/types"
)

// Canonical component names per format.
const (
	ReactMUIComponentName    = "GeneratedComponent"
	ReactNativeComponentName = "App"
	FlutterRootWidgetName    = "GeneratedApp"
)

// Normalize turns raw model text into a NormalizedCode for format. It
// never fails: when the text cannot be coerced to satisfy the format's
// structural invariant, the deterministic per-format fallback component
// is substituted and flagged.
func Normalize(raw types.RawModelOutput, format types.CodeFormat) types.NormalizedCode {
	text := StripFences(raw.Text)
	if strings.TrimSpace(text) == "" {
		return Fallback(raw.Text, format)
	}

	text = ReconcileImports(text, format)
	text, name := CanonicalizeName(text, format)
	text = Dedupe(text, format)

	if len(MissingProperties(text, format)) > 0 {
		return Fallback(raw.Text, format)
	}

	return types.NormalizedCode{
		Text:          text,
		Format:        format,
		ComponentName: name,
	}
}
