package output

// PlainTextStyle renders text unstyled with an optional prefix.
type PlainTextStyle struct {
	prefix string
	suffix string
}

// NewPlainTextStyle creates a plain style with an optional prefix.
func NewPlainTextStyle(prefix string) *PlainTextStyle {
	return &PlainTextStyle{prefix: prefix}
}

// Render implements TextStyle.
func (p *PlainTextStyle) Render(text string) string {
	return p.prefix + text + p.suffix
}

// PlainStyleProvider marks semantic output with text prefixes instead of colors.
// It is the fallback when no theme is available or plain mode is forced.
type PlainStyleProvider struct{}

// NewPlainStyleProvider creates a new plain style provider.
func NewPlainStyleProvider() *PlainStyleProvider {
	return &PlainStyleProvider{}
}

// GetStyle implements StyleProvider.
func (p *PlainStyleProvider) GetStyle(semantic string) TextStyle {
	switch SemanticType(semantic) {
	case SemanticSuccess:
		return NewPlainTextStyle("✓ ")
	case SemanticWarning:
		return NewPlainTextStyle("⚠ ")
	case SemanticError:
		return NewPlainTextStyle("✗ ")
	case SemanticInfo:
		return NewPlainTextStyle("ℹ ")
	case SemanticRc:
		return &PlainTextStyle{prefix: "[", suffix: "]"}
	case SemanticDiffInsert:
		return &PlainTextStyle{prefix: "{+", suffix: "+}"}
	case SemanticDiffDelete:
		return &PlainTextStyle{prefix: "[-", suffix: "-]"}
	default:
		return NewPlainTextStyle("")
	}
}

// IsAvailable implements StyleProvider.
func (p *PlainStyleProvider) IsAvailable() bool {
	return true
}

// GetThemeType implements StyleProvider.
func (p *PlainStyleProvider) GetThemeType() string {
	return "notty"
}
