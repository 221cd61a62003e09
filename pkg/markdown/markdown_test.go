package markdown

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	out, err := Render("**Published 0**")
	require.NoError(t, err)
	assert.Equal(t, "<p><strong>Published 0</strong></p>", out)

	out, err = Render("Published 1")
	require.NoError(t, err)
	assert.Equal(t, "<p>Published 1</p>", out)
}

func TestRenderStripsUnsafeHTML(t *testing.T) {
	out, err := Render("hello <script>alert('x')</script> world")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script")
	assert.Contains(t, out, "hello")

	out, err = Render(`[click](javascript:alert('x'))`)
	require.NoError(t, err)
	assert.NotContains(t, out, "javascript:")
}

func TestRenderEmptySource(t *testing.T) {
	out, err := Render("")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRenderConcurrentReuse(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := Render("*italic*")
			assert.NoError(t, err)
			assert.Equal(t, "<p><em>italic</em></p>", out)
		}()
	}
	wg.Wait()
}
