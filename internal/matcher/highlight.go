package matcher

import (
	"html"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Highlight wraps every case-insensitive whole-word occurrence of words in
// text with <mark> tags. Word boundaries follow Tokenize: an occurrence may
// not touch a letter or digit on either side. Words are regex-escaped before
// compiling. The text itself is not escaped; use HighlightHTML for markup
// that will be rendered.
func Highlight(text string, words []string) string {
	return render(text, words, func(s string) string { return s })
}

// HighlightHTML is Highlight with every segment of text HTML-escaped.
func HighlightHTML(text string, words []string) string {
	return render(text, words, html.EscapeString)
}

func render(text string, words []string, escape func(string) string) string {
	wm := newWordMatcher(words)
	if wm == nil || text == "" {
		return escape(text)
	}

	var b strings.Builder
	b.Grow(len(text) + len(text)/8)
	last := 0
	for _, loc := range wm.findAll(text) {
		b.WriteString(escape(text[last:loc[0]]))
		b.WriteString(markOpen)
		b.WriteString(escape(text[loc[0]:loc[1]]))
		b.WriteString(markClose)
		last = loc[1]
	}
	b.WriteString(escape(text[last:]))
	return b.String()
}

// wordMatcher holds one anchored, case-insensitive pattern per word,
// longest first so "reactjs" wins over "react" at the same position.
type wordMatcher struct {
	patterns []*regexp.Regexp
}

// newWordMatcher returns nil when no usable word is given.
func newWordMatcher(words []string) *wordMatcher {
	seen := make(map[string]struct{}, len(words))
	uniq := make([]string, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w) == "" {
			continue
		}
		key := strings.ToLower(w)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		uniq = append(uniq, w)
	}
	if len(uniq) == 0 {
		return nil
	}

	sort.SliceStable(uniq, func(i, j int) bool {
		return utf8.RuneCountInString(uniq[i]) > utf8.RuneCountInString(uniq[j])
	})
	wm := &wordMatcher{patterns: make([]*regexp.Regexp, len(uniq))}
	for i, w := range uniq {
		wm.patterns[i] = regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(w))
	}
	return wm
}

// findAll returns the [start, end) byte ranges of non-overlapping matches.
// A match may only start where the preceding rune is not a word rune and
// must end where the next rune is not one either.
func (wm *wordMatcher) findAll(text string) [][2]int {
	var locs [][2]int
	prevWord := false
	for i := 0; i < len(text); {
		if !prevWord {
			if end := wm.matchAt(text, i); end > i {
				locs = append(locs, [2]int{i, end})
				last, _ := utf8.DecodeLastRuneInString(text[i:end])
				prevWord = isWordRune(last)
				i = end
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		prevWord = isWordRune(r)
		i += size
	}
	return locs
}

// matchAt returns the end of the longest word matching at i, or -1.
func (wm *wordMatcher) matchAt(text string, i int) int {
	for _, re := range wm.patterns {
		loc := re.FindStringIndex(text[i:])
		if loc == nil || loc[1] == 0 {
			continue
		}
		end := i + loc[1]
		if end < len(text) {
			if next, _ := utf8.DecodeRuneInString(text[end:]); isWordRune(next) {
				continue
			}
		}
		return end
	}
	return -1
}
