package output

import "io"

// Option is a functional option for configuring Printer instances.
type Option func(*Printer)

// WithStyles configures the printer to use the provided StyleProvider.
// A nil or unavailable provider leaves the printer in plain text.
func WithStyles(provider StyleProvider) Option {
	return func(p *Printer) {
		if provider != nil && provider.IsAvailable() {
			p.styleProvider = provider
		}
	}
}

// WithWriter configures the printer to write to writer instead of os.Stdout.
func WithWriter(writer io.Writer) Option {
	return func(p *Printer) {
		if writer != nil {
			p.writer = writer
		}
	}
}

// WithMode configures the printer to operate in a specific output mode.
func WithMode(mode Mode) Option {
	return func(p *Printer) {
		p.mode = mode
	}
}

// WithWidth sets the column limit for tables and markdown.
func WithWidth(width int) Option {
	return func(p *Printer) {
		if width > 0 {
			p.width = width
		}
	}
}

// PlainText forces plain text output, ignoring any StyleProvider.
func PlainText() Option {
	return func(p *Printer) {
		p.mode = ModePlain
		p.forcePlain = true
	}
}

// JSON configures the printer for one JSON object per message.
func JSON() Option {
	return func(p *Printer) {
		p.mode = ModeJSON
	}
}

// TestMode configures the printer for deterministic output in tests.
func TestMode() Option {
	return func(p *Printer) {
		p.mode = ModePlain
		p.forcePlain = true
	}
}

// Silent suppresses all output.
func Silent() Option {
	return func(p *Printer) {
		p.silent = true
	}
}

// WithPrefix adds a prefix to every message.
func WithPrefix(prefix string) Option {
	return func(p *Printer) {
		p.prefix = prefix
	}
}
