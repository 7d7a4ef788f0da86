package normalize

import (
	"regexp"
	"strings"

	"github.com/hxaxnxa/Image-to-React/internal/types"
)

const flutterMaterialImport = "import 'package:flutter/material.dart';"

var (
	fenceTagRe = regexp.MustCompile(`^[A-Za-z0-9_+.#-]*`)

	namedExportLineRe = regexp.MustCompile(`(?m)^[ \t]*export\s+\{[^}]*\}\s*;?[ \t]*$`)
	exportDeclRe      = regexp.MustCompile(`(?m)^([ \t]*)export\s+(const|let|var|function|class)\b`)
	dartExportLineRe  = regexp.MustCompile(`(?m)^[ \t]*export\s+'[^']*'\s*;[ \t]*$`)

	reactImportRe       = regexp.MustCompile(`(?m)^[ \t]*import\s+React\b`)
	reactNativeImportRe = regexp.MustCompile(`from\s+['"]react-native['"]`)

	// Imports the single-file preview bundle cannot resolve: relative
	// paths and style/image assets.
	localImportLineRe = regexp.MustCompile(`(?m)^[ \t]*import\b[^\n]*['"](?:\.\.?/[^'"\n]*|[^'"\n]*\.(?:css|scss|less|svg|png|jpe?g|gif|webp))['"][ \t]*;?[ \t]*$`)

	exportDefaultNamedFuncRe = regexp.MustCompile(`export\s+default\s+function\s+([A-Z][A-Za-z0-9_]*)`)
	exportDefaultAnonFuncRe  = regexp.MustCompile(`export\s+default\s+function\s*\(`)
	exportDefaultClassRe     = regexp.MustCompile(`export\s+default\s+class\s+([A-Z][A-Za-z0-9_]*)`)
	exportDefaultArrowRe     = regexp.MustCompile(`export\s+default\s+\(`)
	// Matches any full-line default export of an expression, wrapped
	// (memo, styled, a call) or bare. Lines carrying a brace are
	// declarations and belong to the inline rewrites above.
	exportDefaultLineRe = regexp.MustCompile(`(?m)^[ \t]*export[ \t]+default[ \t]+[^{}\n]+$`)

	funcDeclRe  = regexp.MustCompile(`(?m)^[ \t]*function\s+([A-Z][A-Za-z0-9_]*)\s*\(`)
	constDeclRe = regexp.MustCompile(`(?m)^[ \t]*const\s+([A-Z][A-Za-z0-9_]*)\s*=\s*(?:\(|async\b|function\b|React\.memo|React\.forwardRef|styled)`)
	classDeclRe = regexp.MustCompile(`(?m)^[ \t]*class\s+([A-Z][A-Za-z0-9_]*)\b`)

	flutterWidgetRe = regexp.MustCompile(`class\s+([A-Z][A-Za-z0-9_]*)\s+extends\s+(?:StatelessWidget|StatefulWidget)`)
	flutterMainRe   = regexp.MustCompile(`(?m)^[ \t]*void\s+main\s*\(`)
)

// StripFences removes markdown code-fence delimiters, optionally tagged
// with a language name. Fence markers glued to a code line keep the
// code and lose the marker.
func StripFences(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "```") {
			rest := strings.TrimPrefix(t, "```")
			// A remainder that is nothing but a tag token is an info
			// string ("```jsx", "``` jsx"); the line is a pure marker.
			if trimmed := strings.TrimSpace(rest); fenceTagRe.FindString(trimmed) == trimmed {
				continue
			}
			// Otherwise code is glued to the marker: keep it, minus a
			// directly attached tag.
			rest = strings.TrimSpace(strings.TrimPrefix(rest, fenceTagRe.FindString(rest)))
			if rest == "" {
				continue
			}
			line = rest
			t = rest
		}
		if strings.HasSuffix(t, "```") {
			line = strings.TrimSuffix(strings.TrimRight(line, " \t"), "```")
			if strings.TrimSpace(line) == "" {
				continue
			}
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// ReconcileImports drops import and export statements the preview host
// cannot satisfy and re-inserts the minimum imports the target surface
// requires. Default exports are left alone; CanonicalizeName owns those.
func ReconcileImports(text string, format types.CodeFormat) string {
	switch format {
	case types.FormatReactMUI:
		text = localImportLineRe.ReplaceAllString(text, "")
		text = namedExportLineRe.ReplaceAllString(text, "")
		text = exportDeclRe.ReplaceAllString(text, "$1$2")
		if !reactImportRe.MatchString(text) {
			text = "import React from 'react';\n\n" + strings.TrimSpace(text)
		}
	case types.FormatReactNative:
		text = localImportLineRe.ReplaceAllString(text, "")
		text = namedExportLineRe.ReplaceAllString(text, "")
		text = exportDeclRe.ReplaceAllString(text, "$1$2")
		if !reactNativeImportRe.MatchString(text) {
			text = "import { StyleSheet, Text, View } from 'react-native';\n\n" + strings.TrimSpace(text)
		}
		if !reactImportRe.MatchString(text) {
			text = "import React from 'react';\n" + strings.TrimSpace(text)
		}
	case types.FormatFlutter:
		text = dartExportLineRe.ReplaceAllString(text, "")
		if !strings.Contains(text, flutterMaterialImport) {
			text = flutterMaterialImport + "\n\n" + strings.TrimSpace(text)
		}
	}
	return strings.TrimSpace(text)
}

// CanonicalizeName renames the main component to the format's required
// name and ensures the entry statement exists: a single trailing
// export default for react formats, a main() for flutter. Returns the
// rewritten text and the component name.
func CanonicalizeName(text string, format types.CodeFormat) (string, string) {
	switch format {
	case types.FormatReactMUI:
		return canonicalizeReact(text, ReactMUIComponentName), ReactMUIComponentName
	case types.FormatReactNative:
		return canonicalizeReact(text, ReactNativeComponentName), ReactNativeComponentName
	case types.FormatFlutter:
		return canonicalizeFlutter(text)
	}
	return text, ""
}

func canonicalizeReact(text, target string) string {
	// Inline default exports become plain declarations first, so the
	// single trailing export statement is the only export left.
	text = exportDefaultNamedFuncRe.ReplaceAllString(text, "function $1")
	text = exportDefaultClassRe.ReplaceAllString(text, "class $1")
	text = exportDefaultAnonFuncRe.ReplaceAllString(text, "function "+target+"(")
	text = exportDefaultArrowRe.ReplaceAllString(text, "const "+target+" = (")

	if name := detectComponentName(text); name != "" && name != target {
		wordRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
		text = wordRe.ReplaceAllString(text, target)
	}

	text = exportDefaultLineRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text) + "\n\nexport default " + target + ";"
}

// detectComponentName finds the first top-level capitalized declaration,
// which is taken to be the main component. A heuristic, not a parse.
func detectComponentName(text string) string {
	best := -1
	name := ""
	for _, re := range []*regexp.Regexp{funcDeclRe, constDeclRe, classDeclRe} {
		if loc := re.FindStringSubmatchIndex(text); loc != nil {
			if best == -1 || loc[0] < best {
				best = loc[0]
				name = text[loc[2]:loc[3]]
			}
		}
	}
	return name
}

func canonicalizeFlutter(text string) (string, string) {
	name := FlutterRootWidgetName
	if m := flutterWidgetRe.FindStringSubmatch(text); m != nil {
		name = m[1]
	} else if !flutterMainRe.MatchString(text) {
		// No widget and no entry point: nothing to attach a main() to,
		// validation sends this to the fallback.
		return strings.TrimSpace(text), name
	}

	if !flutterMainRe.MatchString(text) {
		text = strings.TrimSpace(text) + "\n\nvoid main() {\n  runApp(" + name + "());\n}"
	}
	return strings.TrimSpace(text), name
}

// Dedupe collapses duplicate entry statements and duplicate import
// lines left behind when the raw text already contained what the
// canonicalize pass ensures: first valid occurrence wins.
func Dedupe(text string, format types.CodeFormat) string {
	switch format {
	case types.FormatReactMUI, types.FormatReactNative:
		text = keepFirstMatch(text, exportDefaultLineRe)
		text = dedupeImportLines(text)
	case types.FormatFlutter:
		text = dedupeImportLines(text)
		text = keepFirstMain(text)
	}
	return strings.TrimSpace(text)
}

func keepFirstMatch(text string, re *regexp.Regexp) string {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) <= 1 {
		return text
	}
	var b strings.Builder
	prev := 0
	for i, loc := range locs {
		if i == 0 {
			continue
		}
		b.WriteString(text[prev:loc[0]])
		prev = loc[1]
	}
	b.WriteString(text[prev:])
	return b.String()
}

func dedupeImportLines(text string) string {
	lines := strings.Split(text, "\n")
	seen := make(map[string]bool)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "import ") {
			if seen[t] {
				continue
			}
			seen[t] = true
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// keepFirstMain removes every main() definition after the first,
// covering both expression-bodied and block-bodied forms.
func keepFirstMain(text string) string {
	for {
		locs := flutterMainRe.FindAllStringIndex(text, -1)
		if len(locs) <= 1 {
			return text
		}
		start := locs[1][0]
		end := mainExtent(text, start)
		if end <= start {
			return text
		}
		text = strings.TrimRight(text[:start], " \t") + text[end:]
	}
}

// mainExtent returns the index just past the main() definition starting
// at start, or start when the body cannot be delimited.
func mainExtent(text string, start int) int {
	i := start
	for i < len(text) && text[i] != '{' && text[i] != '=' && text[i] != '\n' {
		i++
	}
	if i >= len(text) {
		return start
	}
	switch text[i] {
	case '=': // arrow body: runs to the terminating semicolon
		for i < len(text) && text[i] != ';' {
			i++
		}
		if i < len(text) {
			i++
		}
		return i
	case '{':
		depth := 0
		for ; i < len(text); i++ {
			switch text[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return i + 1
				}
			}
		}
	}
	return start
}
