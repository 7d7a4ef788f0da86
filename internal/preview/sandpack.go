package preview

import (
	"fmt"

	"github.com/hxaxnxa/Image-to-React/internal/normalize"
	"github.com/hxaxnxa/Image-to-React/internal/types"
)

// Dependency versions pinned to a combination the bundler sandbox is
// known to resolve together. MUI v5 requires the two emotion packages
// as peers.
const sandpackPackageJSON = `{
  "name": "generated-preview",
  "version": "1.0.0",
  "main": "/index.js",
  "dependencies": {
    "react": "18.2.0",
    "react-dom": "18.2.0",
    "@mui/material": "5.15.3",
    "@mui/icons-material": "5.15.3",
    "@emotion/react": "11.11.3",
    "@emotion/styled": "11.11.1"
  }
}`

const sandpackIndexHTML = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Generated preview</title>
  </head>
  <body>
    <div id="root"></div>
  </body>
</html>`

// BuildSandpackBundle constructs the virtual file set the bundler
// sandbox executes: manifest, host page, a theme-provider entry that
// mounts the normalized component, and the component itself.
func BuildSandpackBundle(code types.NormalizedCode) map[string]string {
	component := normalize.ReactMUIComponentName
	entry := fmt.Sprintf(`import React from 'react';
import { createRoot } from 'react-dom/client';
import { ThemeProvider, createTheme } from '@mui/material/styles';
import CssBaseline from '@mui/material/CssBaseline';
import %s from './%s';

const theme = createTheme();

createRoot(document.getElementById('root')).render(
  <ThemeProvider theme={theme}>
    <CssBaseline />
    <%s />
  </ThemeProvider>
);`, component, component, component)

	files := map[string]string{
		"/package.json":      sandpackPackageJSON,
		"/public/index.html": sandpackIndexHTML,
		"/index.js":          entry,
	}
	files["/"+component+".js"] = code.Text
	return files
}
