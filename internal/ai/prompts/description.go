package prompts

import (
	"fmt"

	"github.com/hxaxnxa/Image-to-React/internal/types"
)

// DescriptionSystemPrompt frames the vision call that turns a screenshot
// into an implementable UI description.
const DescriptionSystemPrompt = `You are a UI analyst. You describe interface screenshots precisely enough that a developer could rebuild them without seeing the image.`

const descriptionPromptTemplate = `Describe the user interface shown in the attached screenshot so it can be reimplemented for a %s viewport.

Cover, in order:
1. The overall layout structure (header, sidebar, content regions, footer).
2. Every visible component: its type, label text, and placement.
3. Colors, typography and spacing that define the look.
4. Any visible state (selected tabs, filled inputs, validation messages).

Write a plain-text description. Do not include code.`

// DescriptionPrompt builds the user message for a screenshot-description
// request. There is no text precondition; the image carries the content.
func DescriptionPrompt(device types.DeviceType) string {
	d := "desktop"
	if device == types.DeviceMobile {
		d = "mobile"
	}
	return fmt.Sprintf(descriptionPromptTemplate, d)
}
