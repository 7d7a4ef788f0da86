// Package publish writes generated projects to local disk on request.
// This is the only persistence surface: previews and uploads live in
// memory.
package publish

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hxaxnxa/Image-to-React/internal/types"
	"github.com/hxaxnxa/Image-to-React/internal/utils"
	"github.com/hxaxnxa/Image-to-React/pkg/logger"
)

type Publisher struct {
	outputDir string
}

func NewPublisher(outputDir string) *Publisher {
	if outputDir == "" {
		outputDir = "output"
	}
	return &Publisher{outputDir: outputDir}
}

// PublishFiles writes a filename->content map under outputDir/projectID
// and returns the produced file records. A single bad file fails the
// whole publish; the directory may be left partially written.
func (p *Publisher) PublishFiles(projectID string, files map[string]string) ([]types.GeneratedFile, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to publish for project %s", projectID)
	}

	projectDir := filepath.Join(p.outputDir, projectID)
	written := make([]types.GeneratedFile, 0, len(files))
	for name, content := range files {
		rel := filepath.Clean(filepath.Join("/", name))[1:] // confine to the project dir
		if rel == "" {
			return nil, fmt.Errorf("invalid filename %q in project %s", name, projectID)
		}

		filePath := filepath.Join(projectDir, rel)
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return nil, fmt.Errorf("creating directories for %s: %w", rel, err)
		}
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			return nil, fmt.Errorf("writing file %s: %w", rel, err)
		}

		written = append(written, types.GeneratedFile{
			Filename: rel,
			Type:     utils.DetermineFileType(rel),
			Content:  content,
		})
		logger.Debugf("File saved: %s", filePath)
	}

	logger.Infof("Published project %s: %d files under %s", projectID, len(written), projectDir)
	return written, nil
}

// FilesFor maps normalized code to the file set its format publishes.
// react-mui publishes its full preview bundle; the other formats are a
// single source file.
func FilesFor(code types.NormalizedCode, bundle map[string]string) map[string]string {
	switch code.Format {
	case types.FormatReactMUI:
		if len(bundle) > 0 {
			return bundle
		}
		return map[string]string{"GeneratedComponent.js": code.Text}
	case types.FormatReactNative:
		return map[string]string{"App.js": code.Text}
	case types.FormatFlutter:
		return map[string]string{"lib/main.dart": code.Text}
	}
	return nil
}
