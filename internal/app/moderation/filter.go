package moderation

import (
	"slices"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// DefaultWords is the word list used when none is configured.
var DefaultWords = []string{
	"arse", "arsehole", "asshole", "bastard", "bitch", "bollocks", "bullshit",
	"cock", "crap", "cunt", "damn", "dickhead", "fuck", "fucker", "fucking",
	"motherfucker", "piss", "prick", "shit", "slut", "twat", "wanker", "whore",
}

// Filter flags text containing any of its words.
// Matching ignores case, folds common leet substitutions ("sh1t", "$hit") and
// only counts whole words, so "class" is not flagged for "ass".
type Filter struct {
	matcher *goahocorasick.Machine
}

// NewFilter builds the automaton for words. An empty list yields a filter that
// never flags anything.
func NewFilter(words []string) (*Filter, error) {
	patterns := lo.Uniq(lo.FilterMap(words, func(word string, _ int) (string, bool) {
		folded := string(fold([]rune(strings.TrimSpace(word))))
		return folded, folded != ""
	}))

	if len(patterns) == 0 {
		return &Filter{}, nil
	}
	slices.Sort(patterns)

	m := new(goahocorasick.Machine)
	if err := m.Build(lo.Map(patterns, func(p string, _ int) []rune { return []rune(p) })); err != nil {
		return nil, err
	}

	return &Filter{matcher: m}, nil
}

// IsProfane reports whether text contains a listed word.
func (f *Filter) IsProfane(text string) bool {
	if f == nil || f.matcher == nil || text == "" {
		return false
	}

	original := []rune(text)
	for _, term := range f.matcher.MultiPatternSearch(fold(original), false) {
		if isWholeWord(original, term.Pos, term.Pos+len(term.Word)) {
			return true
		}
	}

	return false
}

// isWholeWord reports whether content[start:end] is not glued to letters or
// digits of the unfolded text, so trailing "!" or "1" never extend a word.
func isWholeWord(content []rune, start, end int) bool {
	if start < 0 || end > len(content) {
		return false
	}
	if start > 0 && isWordRune(content[start-1]) {
		return false
	}
	if end < len(content) && isWordRune(content[end]) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// fold lowercases and maps leet characters back to letters, one rune for one
// rune so match positions stay aligned with the input.
func fold(in []rune) []rune {
	out := make([]rune, len(in))
	for i, r := range in {
		out[i] = unicode.ToLower(simplifyRune(r))
	}
	return out
}

func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}
