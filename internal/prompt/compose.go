// Package prompt builds the final instruction document sent to the
// generative-text provider.
package prompt

import (
	"fmt"
	"strings"
)

const defaultTargetMinutes = "10"

// Compose merges the user's instruction, the target-duration directive, and
// the source corpus into one prompt. It is a pure function: identical inputs
// always yield a byte-identical result.
func Compose(instruction, targetMinutes, corpus string) string {
	if strings.TrimSpace(targetMinutes) == "" {
		targetMinutes = defaultTargetMinutes
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create an engaging podcast script based on the following request: %q\n", instruction)

	if corpus != "" {
		b.WriteString("\nSource Material:\n")
		b.WriteString(corpus)
		b.WriteString("\n")
	}

	b.WriteString("\nRequirements:\n")
	b.WriteString("- Format as a professional podcast script with clear chapters/segments\n")
	b.WriteString("- Include engaging dialogue and natural conversation flow\n")
	b.WriteString("- Add timestamps and segment headings\n")
	b.WriteString("- Make it informative yet entertaining\n")
	b.WriteString("- Include intro, main content sections, and conclusion\n")
	b.WriteString("- Use conversational tone suitable for audio format\n")
	fmt.Fprintf(&b, "- Pace the episode to make it %s minutes long\n", targetMinutes)
	if corpus != "" {
		b.WriteString("- Synthesize the provided source material and cite it naturally in the dialogue\n")
	}

	b.WriteString("\nGenerate a complete podcast script now:\n")

	return b.String()
}
