package matcher_test

import (
	"testing"

	"resume-analyzer-backend/internal/matcher"

	"github.com/stretchr/testify/assert"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		words []string
		want  string
	}{
		{
			name:  "wraps whole words case-insensitively",
			text:  "Built React apps with react-router",
			words: []string{"react"},
			want:  "Built <mark>React</mark> apps with <mark>react</mark>-router",
		},
		{
			name:  "does not match inside other words",
			text:  "Reactive programming",
			words: []string{"react"},
			want:  "Reactive programming",
		},
		{
			name:  "empty word list returns text unchanged",
			text:  "Nothing <b>here</b>",
			words: nil,
			want:  "Nothing <b>here</b>",
		},
		{
			name:  "blank words are skipped",
			text:  "Go developer",
			words: []string{"", "  "},
			want:  "Go developer",
		},
		{
			name:  "regex metacharacters are escaped",
			text:  "a+b and aab",
			words: []string{"a+b"},
			want:  "<mark>a+b</mark> and aab",
		},
		{
			name:  "non-ASCII keywords are whole words",
			text:  "Ran a café and wrote a RÉSUMÉ",
			words: []string{"café", "résumé"},
			want:  "Ran a <mark>café</mark> and wrote a <mark>RÉSUMÉ</mark>",
		},
		{
			name:  "does not match before a non-ASCII letter",
			text:  "cafés and naïve",
			words: []string{"caf", "na"},
			want:  "cafés and naïve",
		},
		{
			name:  "adjacent occurrences are all wrapped",
			text:  "react react,react",
			words: []string{"react"},
			want:  "<mark>react</mark> <mark>react</mark>,<mark>react</mark>",
		},
		{
			name:  "longer keyword wins at the same position",
			text:  "reactjs and react",
			words: []string{"react", "reactjs"},
			want:  "<mark>reactjs</mark> and <mark>react</mark>",
		},
		{
			name:  "shorter keyword still matches when the longer one runs on",
			text:  "node.jsx",
			words: []string{"node.js", "node"},
			want:  "<mark>node</mark>.jsx",
		},
		{
			name:  "multiple words",
			text:  "Docker and Kubernetes",
			words: []string{"docker", "kubernetes"},
			want:  "<mark>Docker</mark> and <mark>Kubernetes</mark>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matcher.Highlight(tt.text, tt.words))
		})
	}
}

func TestHighlightHTML_EscapesText(t *testing.T) {
	got := matcher.HighlightHTML(`<script>alert("x")</script> React & Node`, []string{"react", "node"})
	assert.Equal(t, `&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt; <mark>React</mark> &amp; <mark>Node</mark>`, got)

	assert.Equal(t, "a &lt; b", matcher.HighlightHTML("a < b", nil))
}

func TestHighlight_AgreesWithMatcher(t *testing.T) {
	tax, err := matcher.NewTaxonomy([]string{"café"}, []string{"résumé"})
	if !assert.NoError(t, err) {
		return
	}
	resume := "Ran a café and wrote a résumé"
	res := matcher.ComputeMatch(resume, "café résumé", tax)

	assert.ElementsMatch(t, []string{"café", "résumé"}, res.MatchedWords)
	assert.Equal(t, "Ran a <mark>café</mark> and wrote a <mark>résumé</mark>", matcher.Highlight(resume, res.MatchedWords))
}
