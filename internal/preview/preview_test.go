package preview

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/hxaxnxa/Image-to-React/internal/normalize"
	"github.com/hxaxnxa/Image-to-React/internal/types"
)

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	return NewBuilder(Config{})
}

func TestSandpackBundleFiles(t *testing.T) {
	code := types.NormalizedCode{
		Text:          "import React from 'react';\n\nfunction GeneratedComponent(){return <div>form</div>;}\n\nexport default GeneratedComponent;",
		Format:        types.FormatReactMUI,
		ComponentName: normalize.ReactMUIComponentName,
	}

	res, err := testBuilder(t).Build(context.Background(), code)
	if err != nil {
		t.Fatal(err)
	}
	if res.URL != "" {
		t.Errorf("no define endpoint configured, URL should be empty, got %q", res.URL)
	}

	files := res.BundleFiles
	for _, name := range []string{"/package.json", "/public/index.html", "/index.js", "/GeneratedComponent.js"} {
		if _, ok := files[name]; !ok {
			t.Errorf("bundle missing %s", name)
		}
	}
	if files["/GeneratedComponent.js"] != code.Text {
		t.Error("component file does not carry the normalized code")
	}

	entry := files["/index.js"]
	if !strings.Contains(entry, "import GeneratedComponent from './GeneratedComponent'") {
		t.Errorf("entry does not import the component:\n%s", entry)
	}
	if !strings.Contains(entry, "<GeneratedComponent />") {
		t.Errorf("entry does not render the component:\n%s", entry)
	}

	var manifest struct {
		Dependencies map[string]string `json:"dependencies"`
	}
	if err := json.Unmarshal([]byte(files["/package.json"]), &manifest); err != nil {
		t.Fatalf("package.json is not valid JSON: %v", err)
	}
	for _, dep := range []string{"@mui/material", "@emotion/react", "@emotion/styled", "react", "react-dom"} {
		if manifest.Dependencies[dep] == "" {
			t.Errorf("package.json missing pinned dependency %s", dep)
		}
	}
}

func TestSnackURLCarriesManifest(t *testing.T) {
	code := types.NormalizedCode{
		Text:          "import React from 'react';\n\nfunction App(){return null;}\n\nexport default App;",
		Format:        types.FormatReactNative,
		ComponentName: normalize.ReactNativeComponentName,
	}

	res, err := testBuilder(t).Build(context.Background(), code)
	if err != nil {
		t.Fatal(err)
	}

	u, err := url.Parse(res.URL)
	if err != nil {
		t.Fatalf("snack URL does not parse: %v", err)
	}
	payload, err := base64.URLEncoding.DecodeString(u.Query().Get("data"))
	if err != nil {
		t.Fatalf("data param is not base64: %v", err)
	}

	var manifest snackManifest
	if err := json.Unmarshal(payload, &manifest); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	if manifest.Files["App.js"].Contents != code.Text {
		t.Error("manifest entry file does not carry the normalized code")
	}
	if manifest.Dependencies["react-native"] == "" {
		t.Error("manifest missing react-native dependency version")
	}
}

func TestDartPadURLWithinBudget(t *testing.T) {
	code := types.NormalizedCode{
		Text:   normalize.Fallback("", types.FormatFlutter).Text,
		Format: types.FormatFlutter,
	}
	res, err := testBuilder(t).Build(context.Background(), code)
	if err != nil {
		t.Fatal(err)
	}

	u, err := url.Parse(res.URL)
	if err != nil {
		t.Fatalf("dartpad URL does not parse: %v", err)
	}
	if got := u.Query().Get("source"); got != code.Text {
		t.Errorf("source param does not round-trip:\n%q", got)
	}
}

func TestDartPadURLOverBudgetUsesPlaceholder(t *testing.T) {
	long := "import 'package:flutter/material.dart';\n\nvoid main() {\n  runApp(Text('" + strings.Repeat("a", 8000) + "'));\n}"
	embed := DefaultConfig().DartPadEmbedURL

	got := BuildDartPadURL(types.NormalizedCode{Text: long, Format: types.FormatFlutter}, embed, 7000)
	if len(got) > 7000 {
		t.Errorf("placeholder URL still exceeds budget: %d", len(got))
	}

	u, err := url.Parse(got)
	if err != nil {
		t.Fatal(err)
	}
	if u.Query().Get("source") != flutterPlaceholderApp {
		t.Error("over-budget source was not replaced by the placeholder app")
	}
}

// Every format's fallback placeholder must produce a preview without
// error, so a failed generation still shows something.
func TestFallbackPlaceholdersPreview(t *testing.T) {
	b := testBuilder(t)
	for _, format := range []types.CodeFormat{types.FormatReactMUI, types.FormatReactNative, types.FormatFlutter} {
		code := normalize.Fallback("unusable output", format)
		res, err := b.Build(context.Background(), code)
		if err != nil {
			t.Errorf("format %s: %v", format, err)
			continue
		}
		if res.URL == "" && len(res.BundleFiles) == 0 {
			t.Errorf("format %s: empty preview resource", format)
		}
	}
}

func TestUnknownFormatRejected(t *testing.T) {
	_, err := testBuilder(t).Build(context.Background(), types.NormalizedCode{Format: "vue"})
	if err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}
