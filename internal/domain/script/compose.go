package script

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/forPelevin/reelplan/internal/config"
	"github.com/forPelevin/reelplan/internal/types"
)

// Compose splits a supplied script into beats, one per sentence, and tags
// them by position: hook first, cta last, the final third of the middle as
// climax and the rest as body.
func Compose(text string, p config.Policy) ([]types.Beat, error) {
	sentences := SplitSentences(text)
	switch {
	case len(sentences) == 0:
		return nil, &types.CompositionError{Reason: "script has no words"}
	case len(sentences) == 1:
		a, b, ok := splitClause(sentences[0])
		if !ok {
			return nil, &types.CompositionError{Reason: "script needs at least two words"}
		}
		sentences = []string{a, b}
	case len(sentences) > p.MaxBeats:
		return nil, &types.CompositionError{
			Reason: fmt.Sprintf("script has %d sentences, at most %d fit one video", len(sentences), p.MaxBeats),
		}
	}
	return AssignRoles(sentences), nil
}

// AssignRoles turns ordered beat texts into beats with positional roles.
func AssignRoles(texts []string) []types.Beat {
	n := len(texts)
	beats := make([]types.Beat, n)
	middle := n - 2
	climax := (middle + 2) / 3
	for i, text := range texts {
		role := types.RoleBody
		switch {
		case i == 0:
			role = types.RoleHook
		case i == n-1:
			role = types.RoleCTA
		case i-1 >= middle-climax:
			role = types.RoleClimax
		}
		beats[i] = types.Beat{Text: text, Role: role, Weight: float64(WordCount(text))}
	}
	return beats
}

// SplitSentences splits on line breaks and on runs of sentence punctuation
// followed by whitespace. Whitespace inside a sentence is collapsed and
// fragments without any letter or digit are dropped.
func SplitSentences(text string) []string {
	var out []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.Join(strings.Fields(ln), " ")
		if ln == "" {
			continue
		}
		out = append(out, splitLine(ln)...)
	}
	return out
}

func splitLine(ln string) []string {
	var out []string
	rs := []rune(ln)
	start := 0
	for i := 0; i < len(rs); i++ {
		if !isTerminator(rs[i]) {
			continue
		}
		j := i
		for j+1 < len(rs) && (isTerminator(rs[j+1]) || isCloser(rs[j+1])) {
			j++
		}
		if j+1 == len(rs) || rs[j+1] == ' ' {
			out = appendSentence(out, string(rs[start:j+1]))
			start = j + 1
		}
		i = j
	}
	return appendSentence(out, string(rs[start:]))
}

func appendSentence(out []string, s string) []string {
	s = strings.TrimSpace(s)
	if !hasWord(s) {
		return out
	}
	return append(out, s)
}

// splitClause breaks a lone sentence in two, preferring the clause
// punctuation nearest the middle.
func splitClause(sentence string) (string, string, bool) {
	words := strings.Fields(sentence)
	if len(words) < 2 {
		return "", "", false
	}
	mid := len(words) / 2
	cut := mid
	best := -1
	for k := 1; k < len(words); k++ {
		if !endsClause(words[k-1]) {
			continue
		}
		if best < 0 || abs(k-mid) < abs(best-mid) {
			best = k
		}
	}
	if best > 0 {
		cut = best
	}
	return strings.Join(words[:cut], " "), strings.Join(words[cut:], " "), true
}

func WordCount(s string) int { return len(strings.Fields(s)) }

func isTerminator(r rune) bool { return r == '.' || r == '!' || r == '?' || r == '…' }

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’', '»':
		return true
	}
	return false
}

func endsClause(w string) bool {
	w = strings.TrimRight(w, `"')]”’`)
	return strings.HasSuffix(w, ",") || strings.HasSuffix(w, ";") || strings.HasSuffix(w, ":") || strings.HasSuffix(w, "—")
}

func hasWord(s string) bool {
	for _, r := range s {
		if isWordRune(r) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
