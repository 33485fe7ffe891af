package skilltree

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// SkillsVar is the render-context map holding a user's skill values.
const SkillsVar = "skills"

// SessionVar is the render-context variable holding the user's session token.
const SessionVar = "userurl"

// ValueExpression is the template expression for a skill's current value,
// falling back to 0 when the render context has none.
func ValueExpression(id string) string {
	ref := SkillsVar + "." + ContextKey(id)
	return fmt.Sprintf("{%% if %s %%}{{ %s }}{%% else %%}0{%% endif %%}", ref, ref)
}

// FillExpression is the fill colour template for a skill shape; the hue is
// the skill value.
func FillExpression(id string) string {
	return fmt.Sprintf("hsl(%s, 50%%, 50%%)", ValueExpression(id))
}

// closeLiteral reproduces verbatimClose from outside a verbatim block.
const (
	verbatimOpen  = "{% verbatim %}"
	verbatimClose = "{% endverbatim %}"
	closeLiteral  = "{% templatetag openblock %} endverbatim {% templatetag closeblock %}"
)

// Literal protects text copied from content files so the renderer emits it
// unchanged. Text without template delimiters is returned as is.
func Literal(text string) string {
	if !strings.Contains(text, "{{") && !strings.Contains(text, "{%") && !strings.Contains(text, "{#") {
		return text
	}
	// A verbatim block cannot contain its own end tag, and an empty block
	// does not lex, so each non-empty segment is wrapped separately.
	var sb strings.Builder
	for i, seg := range strings.Split(text, verbatimClose) {
		if i > 0 {
			sb.WriteString(closeLiteral)
		}
		if seg != "" {
			sb.WriteString(verbatimOpen + seg + verbatimClose)
		}
	}
	return sb.String()
}

// ContextKey is the key under which a skill's value is exposed in the render
// context. Identifiers that are ASCII and start with a letter are used as is.
// Others (leading digit, non-ASCII letters, template keywords) cannot follow a dot in a template
// variable and are hex-encoded behind a "k_" prefix, which Normalize never
// produces.
func ContextKey(id string) string {
	if dotAddressable(id) {
		return id
	}
	return "k_" + hex.EncodeToString([]byte(id))
}

// ContextValues re-keys stored values by ContextKey for rendering.
func ContextValues(values map[string]int) map[string]int {
	out := make(map[string]int, len(values))
	for id, v := range values {
		out[ContextKey(id)] = v
	}
	return out
}

// templateKeywords lex as keywords rather than identifiers.
var templateKeywords = map[string]bool{
	"in": true, "and": true, "or": true, "not": true,
	"true": true, "false": true, "as": true, "export": true,
}

func dotAddressable(id string) bool {
	if id == "" || id[0] < 'a' || id[0] > 'z' || templateKeywords[id] {
		return false
	}
	for i := 1; i < len(id); i++ {
		c := id[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
