package output

import (
	"bytes"
	"strings"
	"sync"
)

// CaptureBuffer is a concurrency-safe writer that keeps what printers write to it.
type CaptureBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewCaptureBuffer creates a new capture buffer.
func NewCaptureBuffer() *CaptureBuffer {
	return &CaptureBuffer{}
}

// Write implements io.Writer.
func (c *CaptureBuffer) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// String returns the captured output.
func (c *CaptureBuffer) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// Lines returns the captured output split into lines.
func (c *CaptureBuffer) Lines() []string {
	content := c.String()
	if content == "" {
		return []string{}
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// Reset clears the captured output.
func (c *CaptureBuffer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.Reset()
}

// CaptureOutput runs fn with a plain test printer and returns what it wrote.
func CaptureOutput(fn func(*Printer)) string {
	buffer := NewCaptureBuffer()
	fn(NewPrinter(WithWriter(buffer), TestMode()))
	return buffer.String()
}

// MockStyleProvider wraps text in [semantic]...[/semantic] markers so tests can see
// which style was applied.
type MockStyleProvider struct {
	available bool
}

// NewMockStyleProvider creates an available mock provider.
func NewMockStyleProvider() *MockStyleProvider {
	return &MockStyleProvider{available: true}
}

// SetAvailable sets whether the provider is available.
func (m *MockStyleProvider) SetAvailable(available bool) {
	m.available = available
}

// GetStyle implements StyleProvider.
func (m *MockStyleProvider) GetStyle(semantic string) TextStyle {
	return &PlainTextStyle{prefix: "[" + semantic + "]", suffix: "[/" + semantic + "]"}
}

// IsAvailable implements StyleProvider.
func (m *MockStyleProvider) IsAvailable() bool {
	return m.available
}

// GetThemeType implements StyleProvider.
func (m *MockStyleProvider) GetThemeType() string {
	return "notty"
}
