package skilltree

import (
	apperrors "github.com/skilltreedocs/skilltreedocs/pkg/errors"
)

// MarkdownRenderer converts a skill page source to HTML.
type MarkdownRenderer interface {
	Render(source []byte) (string, error)
}

// BuildSkillPage renders a Markdown page and wraps it in the skill skeleton.
// The rendered HTML is inserted verbatim; template delimiters in the page
// survive rendering as text.
func BuildSkillPage(md MarkdownRenderer, source []byte, skeleton Skeleton) (string, error) {
	body, err := md.Render(source)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeContentLoad, "failed to render skill page", err)
	}
	return skeleton.Fill(Literal(body)), nil
}
