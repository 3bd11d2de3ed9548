package output

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown documents, such as the meta-command reference,
// for the terminal with glamour.
type MarkdownRenderer struct {
	glamourRenderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer matching the provider's theme type, wrapping
// at width columns. Without a usable provider the markdown is passed through as is.
func NewMarkdownRenderer(styleProvider StyleProvider, width int) *MarkdownRenderer {
	if styleProvider == nil || !styleProvider.IsAvailable() {
		return &MarkdownRenderer{}
	}
	if width <= 0 {
		width = 80
	}

	var (
		r   *glamour.TermRenderer
		err error
	)
	switch themeType := styleProvider.GetThemeType(); themeType {
	case "dark", "light", "notty":
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(themeType),
			glamour.WithWordWrap(width),
		)
	default:
		r, err = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
			glamour.WithEnvironmentConfig(),
		)
	}
	if err != nil {
		r = nil
	}
	return &MarkdownRenderer{glamourRenderer: r}
}

// Render returns the rendered document, or the markdown itself if rendering fails.
func (m *MarkdownRenderer) Render(markdown string) string {
	if m.glamourRenderer == nil {
		return markdown
	}
	rendered, err := m.glamourRenderer.Render(markdown)
	if err != nil || strings.TrimSpace(rendered) == "" {
		return markdown
	}
	return rendered
}

// IsStyled reports whether Render applies terminal styling.
func (m *MarkdownRenderer) IsStyled() bool {
	return m.glamourRenderer != nil
}
