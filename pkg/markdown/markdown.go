// Package markdown converts user-authored markdown into HTML that is safe to
// embed without further escaping. The converter is built once per process and
// reused across requests; a mutex guards it because requests are handled
// concurrently.
package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mu       sync.Mutex
	engine   goldmark.Markdown
	sanitize *bluemonday.Policy
)

// Render converts markdown source to sanitized HTML. Every result passes
// through the bluemonday UGC policy; callers embed the output verbatim, so
// sanitation is not optional.
func Render(source string) (string, error) {
	mu.Lock()
	defer mu.Unlock()

	if engine == nil {
		engine = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		)
		sanitize = bluemonday.UGCPolicy()
	}

	var buf bytes.Buffer
	if err := engine.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown conversion failed: %w", err)
	}

	return strings.TrimSpace(sanitize.Sanitize(buf.String())), nil
}
