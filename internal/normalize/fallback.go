package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hxaxnxa/Image-to-React/internal/types"
)

// fallbackExcerptLimit bounds how much of the unusable raw text the
// placeholder component echoes for debugging.
const fallbackExcerptLimit = 280

// Fallback returns the deterministic placeholder component for format.
// It is substituted when normalization cannot produce valid output;
// retrying, if desired, happens a layer up by re-invoking the model.
func Fallback(raw string, format types.CodeFormat) types.NormalizedCode {
	switch format {
	case types.FormatReactNative:
		return types.NormalizedCode{
			Text:          reactNativeFallback(raw),
			Format:        format,
			ComponentName: ReactNativeComponentName,
			Fallback:      true,
		}
	case types.FormatFlutter:
		return types.NormalizedCode{
			Text:          flutterFallback(),
			Format:        format,
			ComponentName: FlutterRootWidgetName,
			Fallback:      true,
		}
	default:
		return types.NormalizedCode{
			Text:          reactMUIFallback(raw),
			Format:        types.FormatReactMUI,
			ComponentName: ReactMUIComponentName,
			Fallback:      true,
		}
	}
}

// excerpt produces a single-line-safe truncated copy of the raw text.
// Backticks are dropped so re-normalizing a fallback never sees fence
// markers.
func excerpt(raw string) string {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "`", ""))
	if s == "" {
		return "(the model returned an empty response)"
	}
	runes := []rune(s)
	if len(runes) > fallbackExcerptLimit {
		s = string(runes[:fallbackExcerptLimit]) + "..."
	}
	return s
}

func reactMUIFallback(raw string) string {
	return fmt.Sprintf(`import React from 'react';

function GeneratedComponent() {
  return (
    <div role="alert" style={{ padding: 24, fontFamily: 'sans-serif' }}>
      <h2>Code generation failed</h2>
      <p>The model response could not be converted into a renderable component. The raw output is shown below.</p>
      <pre style={{ whiteSpace: 'pre-wrap', background: '#f5f5f5', padding: 12 }}>{%s}</pre>
    </div>
  );
}

export default GeneratedComponent;`, strconv.Quote(excerpt(raw)))
}

func reactNativeFallback(raw string) string {
	return fmt.Sprintf(`import React from 'react';
import { StyleSheet, Text, View } from 'react-native';

function App() {
  return (
    <View style={styles.container} accessibilityRole="alert">
      <Text style={styles.title}>Code generation failed</Text>
      <Text style={styles.body}>The model response could not be converted into a renderable component.</Text>
      <Text style={styles.excerpt}>{%s}</Text>
    </View>
  );
}

const styles = StyleSheet.create({
  container: { flex: 1, alignItems: 'center', justifyContent: 'center', padding: 24 },
  title: { fontSize: 18, fontWeight: 'bold', marginBottom: 8 },
  body: { marginBottom: 16, textAlign: 'center' },
  excerpt: { color: '#666666' },
});

export default App;`, strconv.Quote(excerpt(raw)))
}

func flutterFallback() string {
	return `import 'package:flutter/material.dart';

void main() {
  runApp(const GeneratedApp());
}

class GeneratedApp extends StatelessWidget {
  const GeneratedApp({super.key});

  @override
  Widget build(BuildContext context) {
    return const MaterialApp(
      home: Scaffold(
        body: Center(
          child: Padding(
            padding: EdgeInsets.all(24),
            child: Text(
              'Code generation failed: the model response could not be converted into a runnable Flutter app.',
              textAlign: TextAlign.center,
            ),
          ),
        ),
      ),
    );
  }
}`
}
