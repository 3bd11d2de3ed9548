package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Printer writes semantic output in plain, styled or JSON form.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	mode          Mode
	forcePlain    bool
	silent        bool
	prefix        string
	width         int

	mu sync.Mutex
}

// NewPrinter creates a new Printer with the given options.
// By default, it writes to os.Stdout with automatic mode detection.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
		mode:   ModeAuto,
		width:  100,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Print outputs text without any semantic styling.
func (p *Printer) Print(text string) {
	p.output(SemanticPlain, text, false)
}

// Printf outputs formatted text without any semantic styling.
func (p *Printer) Printf(format string, args ...interface{}) {
	p.output(SemanticPlain, fmt.Sprintf(format, args...), false)
}

// Println outputs text and a newline without any semantic styling.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text, true)
}

// Info outputs an informational line.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text, true)
}

// Success outputs a success line.
func (p *Printer) Success(text string) {
	p.output(SemanticSuccess, text, true)
}

// Warning outputs a warning line.
func (p *Printer) Warning(text string) {
	p.output(SemanticWarning, text, true)
}

// Error outputs an error line.
func (p *Printer) Error(text string) {
	p.output(SemanticError, text, true)
}

// Heading outputs a section title line.
func (p *Printer) Heading(text string) {
	p.output(SemanticHeading, text, true)
}

// Comment outputs an LDraw comment line verbatim.
func (p *Printer) Comment(text string) {
	p.output(SemanticComment, text, true)
}

// Emit outputs text with an explicit semantic type.
func (p *Printer) Emit(semantic SemanticType, text string, newline bool) {
	p.output(semantic, text, newline)
}

// Style returns text rendered for semantic without writing it, for composing lines
// and table cells. JSON mode returns the text unchanged.
func (p *Printer) Style(semantic SemanticType, text string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode == ModeJSON {
		return text
	}
	return p.render(semantic, text)
}

// Markdown outputs a markdown document, rendered for the terminal when styles are in use.
func (p *Printer) Markdown(markdown string) {
	p.mu.Lock()
	provider, width, stylable := p.styleProvider, p.width, p.stylable()
	p.mu.Unlock()

	if stylable {
		markdown = NewMarkdownRenderer(provider, width).Render(markdown)
	}
	p.output(SemanticPlain, markdown, true)
}

// Table outputs a table, clipped to the printer width.
func (p *Printer) Table(t *Table) {
	p.mu.Lock()
	width := p.width
	p.mu.Unlock()
	p.output(SemanticPlain, strings.TrimSuffix(t.SetMaxWidth(width).Render(), "\n"), true)
}

// JSON outputs v as indented JSON regardless of mode.
func (p *Printer) JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	p.write(string(data) + "\n")
	return nil
}

func (p *Printer) output(semantic SemanticType, text string, addNewline bool) {
	if p.silent {
		return
	}

	p.mu.Lock()
	var finalText string
	if p.mode == ModeJSON {
		finalText = renderJSON(semantic, text)
	} else {
		finalText = p.render(semantic, text)
		if addNewline && !strings.HasSuffix(finalText, "\n") {
			finalText += "\n"
		}
	}
	if p.prefix != "" {
		finalText = p.prefix + finalText
	}
	p.mu.Unlock()

	p.write(finalText)
}

func (p *Printer) write(text string) {
	if p.silent {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprint(p.writer, text)
}

// render applies the provider style, falling back to plain prefixes. Caller holds mu.
func (p *Printer) render(semantic SemanticType, text string) string {
	if p.stylable() {
		return p.styleProvider.GetStyle(string(semantic)).Render(text)
	}
	return NewPlainStyleProvider().GetStyle(string(semantic)).Render(text)
}

func (p *Printer) stylable() bool {
	if p.forcePlain || p.mode == ModePlain || p.mode == ModeJSON {
		return false
	}
	return p.styleProvider != nil && p.styleProvider.IsAvailable()
}

func renderJSON(semantic SemanticType, text string) string {
	data, err := json.Marshal(map[string]interface{}{
		"type":    semantic,
		"message": text,
	})
	if err != nil {
		return text + "\n"
	}
	return string(data) + "\n"
}

// SetWriter changes the output writer.
func (p *Printer) SetWriter(writer io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer = writer
}

// SetMode changes the output mode.
func (p *Printer) SetMode(mode Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
}

// Mode returns the output mode.
func (p *Printer) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// SetStyleProvider changes the style provider. Pass nil to disable styling.
func (p *Printer) SetStyleProvider(provider StyleProvider) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.styleProvider = provider
}

// IsStylable returns true if the printer applies styles.
func (p *Printer) IsStylable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stylable()
}
