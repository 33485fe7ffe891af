package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := New()

	out, err := r.Render([]byte("# Title\n\nBody"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>Title</h1>\n<p>Body</p>\n", out)
}

func TestRender_RawHTMLPassesThrough(t *testing.T) {
	out, err := New().Render([]byte("Watch:\n\n<iframe src=\"https://example.com/v\"></iframe>\n"))
	require.NoError(t, err)
	assert.Contains(t, out, `<iframe src="https://example.com/v"></iframe>`)
}

func TestRender_GFM(t *testing.T) {
	out, err := New().Render([]byte("| Level | Reps |\n|---|---|\n| 1 | 5 |\n\n~~old~~\n\n- [x] done\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<del>old</del>")
	assert.Contains(t, out, `type="checkbox"`)
}

func TestTitle(t *testing.T) {
	r := New()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain", "# Back Tuck\n\nBody", "Back Tuck"},
		{"emphasis", "# The *Kip* Up\n", "The Kip Up"},
		{"code", "# Using `drills`\n", "Using drills"},
		{"second level ignored", "## Notes\n\n# Handstand\n", "Handstand"},
		{"setext", "Cartwheel\n=========\n", "Cartwheel"},
		{"none", "Just text", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Title([]byte(tt.src)))
		})
	}
}
