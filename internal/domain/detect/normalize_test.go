package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeForComparison(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "launch the rocket", "launch the rocket"},
		{"emoji stripped", "launch 🚀 now", "launch now"},
		{"markdown stripped", "**bold** and _italic_ and `code`", "bold and italic and code"},
		{"heading markers", "## Getting Started", "getting started"},
		{"link syntax", "[click here](somewhere)", "click heresomewhere"},
		{"case folded", "Launch The ROCKET", "launch the rocket"},
		{"punctuation dropped", "ready, set, go!", "ready set go"},
		{"whitespace collapsed", "a \t b\n\nc", "a b c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeForComparison(tc.in))
		})
	}
}

func TestNormalizeForComparison_Idempotent(t *testing.T) {
	inputs := []string{
		"# Launch 🚀 the **rocket**, now!",
		"  spaced   out\ttext  ",
		"MIXED case With 🔥 Emoji",
	}
	for _, in := range inputs {
		once := NormalizeForComparison(in)
		assert.Equal(t, once, NormalizeForComparison(once), "not idempotent for %q", in)
	}
}

func TestNormalizeForComparison_EqualAfterFormattingChanges(t *testing.T) {
	a := NormalizeForComparison("Launch the rocket 🚀 today")
	b := NormalizeForComparison("**launch** the ROCKET 🚀 today!")
	assert.Equal(t, a, b)
}
