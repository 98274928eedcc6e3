// Package emphasis picks the words a caption should pop on.
package emphasis

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var (
	reNum  = regexp.MustCompile(`\d`)
	reHook = regexp.MustCompile(`^(important|key|secret|mistake|never|always|remember|nobody|stop|truth|free|wrong|real|exactly|changed|forever|today|zero|every|best|worst)$`)
)

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {}, "this": {}, "your": {}, "you": {},
	"are": {}, "how": {}, "what": {}, "why": {}, "from": {}, "into": {}, "about": {}, "its": {},
}

// Normalize lower-cases a token and trims surrounding punctuation.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}))
}

// Pick returns up to max distinct normalized tokens of text worth
// highlighting, in order of appearance. Hook words score highest, then
// numbers and topic keywords. Ties keep the earlier token.
func Pick(text, topic string, max int) []string {
	if max <= 0 {
		return nil
	}
	keywords := topicKeywords(topic)

	type cand struct {
		word  string
		score int
		pos   int
	}
	var cands []cand
	seen := map[string]struct{}{}
	for i, raw := range strings.Fields(text) {
		w := Normalize(raw)
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		s := score(w, raw, keywords)
		if s > 0 {
			cands = append(cands, cand{word: w, score: s, pos: i})
		}
	}

	sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })
	if len(cands) > max {
		cands = cands[:max]
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].pos < cands[j].pos })

	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.word
	}
	return out
}

func score(w, raw string, keywords map[string]struct{}) int {
	s := 0
	if reHook.MatchString(w) {
		s += 3
	}
	if reNum.MatchString(w) {
		s += 2
	}
	if _, ok := keywords[w]; ok {
		s += 2
	}
	if s > 0 && strings.HasSuffix(raw, "!") {
		s++
	}
	return s
}

func topicKeywords(topic string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, raw := range strings.Fields(topic) {
		w := Normalize(raw)
		if len([]rune(w)) < 2 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		out[w] = struct{}{}
	}
	return out
}

// Set indexes emphasis words for lookup.
func Set(words []string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}
