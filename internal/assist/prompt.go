package assist

import (
	"fmt"
	"strings"

	"github.com/MYAIBV/my-ai-portfolio/internal/locale"
)

// Field selects which part of an item a suggestion is for.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
)

func ParseField(s string) (Field, error) {
	switch Field(strings.TrimSpace(s)) {
	case FieldTitle:
		return FieldTitle, nil
	case FieldDescription:
		return FieldDescription, nil
	}
	return "", fmt.Errorf("invalid field %q, supported: title, description", s)
}

// SuggestionContext carries whatever the editor already has, so the
// model can stay on topic.
type SuggestionContext struct {
	ExistingTitle       string   `json:"existingTitle"`
	ExistingDescription string   `json:"existingDescription"`
	Categories          []string `json:"categories"`
	Keywords            []string `json:"keywords"`
}

func translatePrompt(text string, from, to locale.Locale) string {
	return fmt.Sprintf(`Translate the following %s text to %s.
Keep the same tone and style. Only respond with the translation, nothing else.

Text to translate:
%s`, from.Name(), to.Name(), text)
}

func suggestPrompt(sctx SuggestionContext, field Field, loc locale.Locale) string {
	var info strings.Builder
	if sctx.ExistingTitle != "" {
		fmt.Fprintf(&info, "Current title: %s\n", sctx.ExistingTitle)
	}
	if sctx.ExistingDescription != "" {
		fmt.Fprintf(&info, "Current description: %s\n", sctx.ExistingDescription)
	}
	if len(sctx.Categories) > 0 {
		fmt.Fprintf(&info, "Categories: %s\n", strings.Join(sctx.Categories, ", "))
	}
	if len(sctx.Keywords) > 0 {
		fmt.Fprintf(&info, "Keywords: %s\n", strings.Join(sctx.Keywords, ", "))
	}

	contextBlock := ""
	if info.Len() > 0 {
		contextBlock = "\nContext:\n" + info.String()
	}

	if field == FieldTitle {
		return fmt.Sprintf(`Generate a concise, professional %s title for an AI project portfolio item.
%s
Requirements:
- Keep it short (3-8 words)
- Make it catchy and descriptive
- Focus on the AI/technology aspect
- Only respond with the title, nothing else`, loc.Name(), contextBlock)
	}

	return fmt.Sprintf(`Generate a professional %s description for an AI project portfolio item.
%s
Requirements:
- 2-4 sentences
- Highlight the benefits and features
- Keep it engaging and informative
- Focus on what makes this AI solution valuable
- Only respond with the description, nothing else`, loc.Name(), contextBlock)
}
