package preview

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/hxaxnxa/Image-to-React/internal/types"
)

// snackManifest is the mobile sandbox's project definition: the
// normalized code as the app entry file plus a fixed, known-compatible
// set of runtime dependency versions.
type snackManifest struct {
	Files        map[string]snackFile `json:"files"`
	Dependencies map[string]string    `json:"dependencies"`
}

type snackFile struct {
	Type     string `json:"type"`
	Contents string `json:"contents"`
}

// BuildSnackURL serializes the manifest and Base64-encodes it into the
// embed endpoint's query string.
func BuildSnackURL(code types.NormalizedCode, embedURL string) (string, error) {
	manifest := snackManifest{
		Files: map[string]snackFile{
			"App.js": {Type: "CODE", Contents: code.Text},
		},
		Dependencies: map[string]string{
			"react":        "18.2.0",
			"react-native": "0.73.2",
		},
	}

	payload, err := json.Marshal(manifest)
	if err != nil {
		return "", fmt.Errorf("%w: marshaling snack manifest: %v", types.ErrPreviewUnavailable, err)
	}

	q := url.Values{}
	q.Set("platform", "web")
	q.Set("name", "Generated preview")
	q.Set("data", base64.URLEncoding.EncodeToString(payload))
	return embedURL + "?" + q.Encode(), nil
}
