// Package output provides the console output system for the lpub tools.
// Styling is injected through a StyleProvider so the printer works the same with
// colors, in plain text, and as JSON.
package output

// StyleProvider supplies styles for semantic output types.
// The output package depends only on this interface, not on a concrete theme.
type StyleProvider interface {
	// GetStyle returns a TextStyle for the given semantic type.
	GetStyle(semantic string) TextStyle

	// IsAvailable returns true if the provider is ready to provide styles.
	// The printer falls back to plain text otherwise.
	IsAvailable() bool

	// GetThemeType returns the theme type used for markdown rendering ("dark", "light", "auto").
	GetThemeType() string
}

// TextStyle renders text with styling. lipgloss.Style satisfies it.
type TextStyle interface {
	Render(text string) string
}

// Mode defines different output modes the printer can operate in.
type Mode int

const (
	// ModeAuto uses styles when a provider is configured, plain text otherwise
	ModeAuto Mode = iota

	// ModeStyled forces styled output
	ModeStyled

	// ModePlain forces plain text output
	ModePlain

	// ModeJSON outputs one JSON object per message
	ModeJSON
)

// SemanticType defines the semantic meaning of output for consistent styling.
type SemanticType string

const (
	SemanticPlain   SemanticType = "plain"
	SemanticInfo    SemanticType = "info"
	SemanticSuccess SemanticType = "success"
	SemanticWarning SemanticType = "warning"
	SemanticError   SemanticType = "error"

	// SemanticHeading is a section title.
	SemanticHeading SemanticType = "heading"
	// SemanticKeyword is a meta-command keyword path such as "PAGE BACKGROUND".
	SemanticKeyword SemanticType = "keyword"
	// SemanticValue is a formatted setting value.
	SemanticValue SemanticType = "value"
	// SemanticLocation is a "model:line" source location.
	SemanticLocation SemanticType = "location"
	// SemanticModel is a model name.
	SemanticModel SemanticType = "model"
	// SemanticRc is a parse action code.
	SemanticRc SemanticType = "rc"
	// SemanticComment is an LDraw comment line shown verbatim.
	SemanticComment SemanticType = "comment"

	// SemanticDiffInsert is text a round trip added.
	SemanticDiffInsert SemanticType = "diff_insert"
	// SemanticDiffDelete is text a round trip dropped.
	SemanticDiffDelete SemanticType = "diff_delete"
)
