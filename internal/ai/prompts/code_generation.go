package prompts

import (
	"fmt"
	"strings"

	"github.com/hxaxnxa/Image-to-React/internal/types"
)

// System prompt shared by all code-generation calls.
const CodeGenerationSystemPrompt = `You are an expert front-end engineer. You convert UI descriptions into clean, production-quality component code, following the formatting instructions exactly.`

const reactMUIPromptTemplate = `
A user wants a user interface built from the following description:

---
%s
---

Please write a **single React component** based on the following rules:

1.  **Framework**: React 18 with Material-UI (MUI v5). Import components from ` + "`@mui/material`" + ` and icons from ` + "`@mui/icons-material`" + `.
2.  **Component name**: The component MUST be named ` + "`GeneratedComponent`" + ` and the file must end with exactly one ` + "`export default GeneratedComponent;`" + ` statement.
3.  **Layout**: Target a %s viewport. Use MUI layout primitives (Box, Grid, Stack, Container) and the sx prop for styling. The layout must be responsive.
4.  **Accessibility**: Use semantic elements and aria-* attributes on interactive controls. Every input needs a label.
5.  **State**: Use React hooks for any interactive state. No external state libraries.
%s
Respond with the component source code ONLY. Do not wrap the code in markdown fences and do not add any explanation before or after it.`

const reactNativePromptTemplate = `
A user wants a mobile screen built from the following description:

---
%s
---

Please write a **single React Native component** based on the following rules:

1.  **Framework**: React Native with core components only (View, Text, TextInput, TouchableOpacity, ScrollView, Image, StyleSheet).
2.  **Component name**: The root component MUST be named ` + "`App`" + ` and the file must end with exactly one ` + "`export default App;`" + ` statement.
3.  **Imports**: Import React from 'react' and every used component from 'react-native'.
4.  **Styling**: Use StyleSheet.create for all styles. Target a %s-sized screen with flexbox layout.
5.  **Accessibility**: Set accessibilityLabel and accessibilityRole on interactive controls.
%s
Respond with the component source code ONLY. Do not wrap the code in markdown fences and do not add any explanation before or after it.`

const flutterPromptTemplate = `
A user wants a Flutter screen built from the following description:

---
%s
---

Please write a **complete, runnable Flutter application** based on the following rules:

1.  **Framework**: Flutter with Material widgets. Begin the file with ` + "`import 'package:flutter/material.dart';`" + `.
2.  **Entry point**: Include exactly one ` + "`void main()`" + ` function that calls runApp with the root widget.
3.  **Root widget**: Name the root widget ` + "`GeneratedApp`" + ` and build a MaterialApp containing the described screen.
4.  **Layout**: Target a %s layout. Use standard Material widgets (Scaffold, AppBar, Column, Row, Padding, Card).
5.  **Accessibility**: Provide Semantics labels for interactive controls.
%s
Respond with the Dart source code ONLY. Do not wrap the code in markdown fences and do not add any explanation before or after it.`

// BuildCodePrompt constructs the generation prompt for a request. The
// description must be non-empty and the format must be one of the three
// recognized values; anything else is a caller error.
func BuildCodePrompt(req types.GenerationRequest) (string, error) {
	if strings.TrimSpace(req.UIDescription) == "" {
		return "", fmt.Errorf("%w: ui description is empty", types.ErrConfiguration)
	}

	device := "desktop"
	if req.DeviceType == types.DeviceMobile {
		device = "mobile"
	}

	extra := ""
	if strings.TrimSpace(req.UserPrompt) != "" {
		extra = fmt.Sprintf("\nAdditional instructions from the user:\n---\n%s\n---\n", req.UserPrompt)
	}

	switch req.CodeFormat {
	case types.FormatReactMUI:
		return fmt.Sprintf(reactMUIPromptTemplate, req.UIDescription, device, extra), nil
	case types.FormatReactNative:
		return fmt.Sprintf(reactNativePromptTemplate, req.UIDescription, device, extra), nil
	case types.FormatFlutter:
		return fmt.Sprintf(flutterPromptTemplate, req.UIDescription, device, extra), nil
	}
	return "", fmt.Errorf("%w: unknown code format %q", types.ErrConfiguration, req.CodeFormat)
}
