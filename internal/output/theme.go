package output

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"lpubmeta/internal/data/embedded"
	"lpubmeta/internal/logger"
)

// themeFile is the YAML layout of a theme.
type themeFile struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	Styles      map[string]styleConfig `yaml:"styles"`
}

// styleConfig is one semantic style. Colors are either a plain color string or a
// {light, dark} pair chosen by terminal background.
type styleConfig struct {
	Foreground    interface{} `yaml:"foreground,omitempty"`
	Background    interface{} `yaml:"background,omitempty"`
	Bold          *bool       `yaml:"bold,omitempty"`
	Italic        *bool       `yaml:"italic,omitempty"`
	Underline     *bool       `yaml:"underline,omitempty"`
	Strikethrough *bool       `yaml:"strikethrough,omitempty"`
}

// Theme is a StyleProvider backed by lipgloss styles.
type Theme struct {
	Name        string
	Description string

	styles    map[SemanticType]lipgloss.Style
	themeType string
	available bool
}

// styled adapts lipgloss.Style to TextStyle.
type styled struct {
	style lipgloss.Style
}

func (s styled) Render(text string) string {
	return s.style.Render(text)
}

// ParseTheme builds a theme from its YAML description.
func ParseTheme(data []byte) (*Theme, error) {
	var tf themeFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	if tf.Name == "" {
		return nil, fmt.Errorf("theme file has no name")
	}

	t := &Theme{
		Name:        tf.Name,
		Description: tf.Description,
		styles:      make(map[SemanticType]lipgloss.Style, len(tf.Styles)),
		themeType:   tf.Name,
		available:   lipgloss.ColorProfile() != termenv.Ascii,
	}
	for semantic, cfg := range tf.Styles {
		t.styles[SemanticType(semantic)] = createStyle(cfg)
	}
	if t.themeType != "dark" && t.themeType != "light" {
		t.themeType = "auto"
	}
	return t, nil
}

// LoadTheme returns one of the embedded themes. "auto" picks dark or light from the
// terminal background; an unknown name falls back to plain.
func LoadTheme(name string) (*Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "auto":
		name = "light"
		if termenv.HasDarkBackground() {
			name = "dark"
		}
	}

	data, err := embedded.ThemesFS.ReadFile(path.Join("themes", name+".yaml"))
	if err != nil {
		logger.Debug("Unknown theme requested, using plain", "theme", name, "available", ThemeNames())
		data, err = embedded.ThemesFS.ReadFile("themes/plain.yaml")
		if err != nil {
			return nil, fmt.Errorf("failed to read plain theme: %w", err)
		}
	}
	return ParseTheme(data)
}

// ThemeNames lists the embedded themes.
func ThemeNames() []string {
	entries, err := embedded.ThemesFS.ReadDir("themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// GetStyle implements StyleProvider. Semantic types the theme does not name render unstyled.
func (t *Theme) GetStyle(semantic string) TextStyle {
	return styled{style: t.styles[SemanticType(semantic)]}
}

// IsAvailable implements StyleProvider. A theme is unavailable on terminals without color.
func (t *Theme) IsAvailable() bool {
	return t.available
}

// GetThemeType implements StyleProvider.
func (t *Theme) GetThemeType() string {
	return t.themeType
}

func createStyle(cfg styleConfig) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c := parseColor(cfg.Foreground); c != nil {
		style = style.Foreground(c)
	}
	if c := parseColor(cfg.Background); c != nil {
		style = style.Background(c)
	}
	if cfg.Bold != nil && *cfg.Bold {
		style = style.Bold(true)
	}
	if cfg.Italic != nil && *cfg.Italic {
		style = style.Italic(true)
	}
	if cfg.Underline != nil && *cfg.Underline {
		style = style.Underline(true)
	}
	if cfg.Strikethrough != nil && *cfg.Strikethrough {
		style = style.Strikethrough(true)
	}
	return style
}

func parseColor(v interface{}) lipgloss.TerminalColor {
	switch c := v.(type) {
	case string:
		return lipgloss.Color(c)
	case map[string]interface{}:
		light, okLight := c["light"].(string)
		dark, okDark := c["dark"].(string)
		if okLight && okDark {
			return lipgloss.AdaptiveColor{Light: light, Dark: dark}
		}
	}
	return nil
}
