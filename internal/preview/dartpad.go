package preview

import (
	"net/url"

	"github.com/hxaxnxa/Image-to-React/internal/types"
)

// flutterPlaceholderApp is the short, self-contained app embedded when
// the generated source would overflow the playground's URL budget.
// Emitting a truncated URL would be rejected by the host outright.
const flutterPlaceholderApp = `import 'package:flutter/material.dart';

void main() {
  runApp(const MaterialApp(
    home: Scaffold(
      body: Center(
        child: Padding(
          padding: EdgeInsets.all(24),
          child: Text(
            'This preview is too large to embed. Copy the generated code into your editor to run it.',
            textAlign: TextAlign.center,
          ),
        ),
      ),
    ),
  ));
}`

// BuildDartPadURL URL-encodes the Dart source into the playground embed
// endpoint, substituting the placeholder app when the result exceeds
// budget.
func BuildDartPadURL(code types.NormalizedCode, embedURL string, budget int) string {
	u := dartPadURL(code.Text, embedURL)
	if len(u) > budget {
		return dartPadURL(flutterPlaceholderApp, embedURL)
	}
	return u
}

func dartPadURL(source, embedURL string) string {
	q := url.Values{}
	q.Set("run", "true")
	q.Set("split", "60")
	q.Set("source", source)
	return embedURL + "?" + q.Encode()
}
