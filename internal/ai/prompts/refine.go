package prompts

import (
	"fmt"
	"strings"
)

const refinePromptTemplate = `Your previous response could not be used as-is. The following required properties were missing:

%s

Here is your previous response:

---
%s
---

Rewrite the complete source so every listed property is satisfied. Respond with the source code ONLY, without markdown fences or explanation.`

// RefinePrompt asks the model to repair its previous output. The caller
// bounds how often this is sent; the prompt itself carries no retry
// semantics.
func RefinePrompt(previous string, missing []string) string {
	var b strings.Builder
	for _, m := range missing {
		b.WriteString("- ")
		b.WriteString(m)
		b.WriteString("\n")
	}
	return fmt.Sprintf(refinePromptTemplate, strings.TrimRight(b.String(), "\n"), previous)
}
