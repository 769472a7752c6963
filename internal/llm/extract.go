package llm

import (
	"regexp"
	"strings"
)

// fencePattern matches a markdown code fence, optionally tagged "json",
// capturing the inner content.
var fencePattern = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)\\s*```")

// ExtractJSON returns a best-effort JSON-parseable string from raw model
// output. If a fenced code block is present its inner content is returned
// trimmed; otherwise the trimmed raw text is returned. The function is pure
// and idempotent once no fencing remains.
func ExtractJSON(content string) string {
	if m := fencePattern.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(content)
}
