package normalize

import (
	"regexp"
	"strings"

	"github.com/hxaxnxa/Image-to-React/internal/types"
)

// Structural validation is substring- and regex-based on purpose: full
// JavaScript/Dart parsing is out of scope, so a syntactically broken
// component can still pass (a documented false-negative risk). What the
// checks do guarantee is that the entry-point invariant holds: required
// component name, export statement or main(), and a return-style body.

var (
	jsxTagRe = regexp.MustCompile(`<[A-Za-z][A-Za-z0-9.]*(\s[^<>]*)?/?>`)

	muiComponentDeclRe = regexp.MustCompile(`(?:function|class|const)\s+` + ReactMUIComponentName + `\b`)
	rnComponentDeclRe  = regexp.MustCompile(`(?:function|class|const)\s+` + ReactNativeComponentName + `\b`)
)

// MissingProperties reports which required structural properties the
// text lacks for format. An empty result means the text is minimally
// valid. The strings double as repair instructions for a refine prompt.
func MissingProperties(text string, format types.CodeFormat) []string {
	if strings.TrimSpace(text) == "" {
		return []string{"any source text"}
	}

	var missing []string
	switch format {
	case types.FormatReactMUI:
		if !muiComponentDeclRe.MatchString(text) {
			missing = append(missing, "a component named "+ReactMUIComponentName)
		}
		if !strings.Contains(text, "export default "+ReactMUIComponentName) {
			missing = append(missing, "an `export default "+ReactMUIComponentName+";` statement")
		}
		if !strings.Contains(text, "return") {
			missing = append(missing, "a return statement rendering the described UI")
		}
		if !jsxTagRe.MatchString(text) {
			missing = append(missing, "well-formed JSX element markup")
		}
	case types.FormatReactNative:
		if !rnComponentDeclRe.MatchString(text) {
			missing = append(missing, "a root component named "+ReactNativeComponentName)
		}
		if !strings.Contains(text, "export default "+ReactNativeComponentName) {
			missing = append(missing, "an `export default "+ReactNativeComponentName+";` statement")
		}
		if !reactNativeImportRe.MatchString(text) {
			missing = append(missing, "imports from 'react-native'")
		}
		if !strings.Contains(text, "return") {
			missing = append(missing, "a return statement rendering the described UI")
		}
	case types.FormatFlutter:
		if !strings.Contains(text, flutterMaterialImport) {
			missing = append(missing, "the `"+flutterMaterialImport+"` import")
		}
		if !flutterMainRe.MatchString(text) {
			missing = append(missing, "a `void main()` entry point")
		}
		if !strings.Contains(text, "runApp(") {
			missing = append(missing, "a runApp() call starting the root widget")
		}
		if !strings.Contains(text, "return") {
			missing = append(missing, "a build method returning the described UI")
		}
	}
	return missing
}
