package preview

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// signature recognizes a language from an unambiguous marker in the code.
type signature struct {
	lang  string
	match func(code, trimmed string) bool
}

var signatures = []signature{
	{"go", func(_, t string) bool { return strings.HasPrefix(t, "package ") }},
	{"html", func(_, t string) bool {
		lower := strings.ToLower(t)
		return containsAny(lower, "<!doctype html", "<html", "<head>", "<body>")
	}},
	{"python", func(c, _ string) bool {
		return (strings.Contains(c, "def ") && strings.Contains(c, "):")) ||
			strings.Contains(c, "__name__")
	}},
	{"json", func(_, t string) bool {
		return (strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[")) && strings.Contains(t, `"`)
	}},
	{"dockerfile", func(c, t string) bool {
		return strings.HasPrefix(t, "FROM ") ||
			(strings.Contains(c, "WORKDIR ") && strings.Contains(c, "COPY "))
	}},
	{"sql", func(_, t string) bool {
		upper := strings.ToUpper(t)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(c, _ string) bool { return containsAny(c, "fn main()", "println!", "let mut ") }},
	{"javascript", func(c, _ string) bool { return containsAny(c, "=>", "const ", "console.log") }},
	{"yaml", func(c, _ string) bool { return yamlPairs(c) >= 2 }},
}

// classifierCandidates bounds the enry classifier to languages that show up
// in notes.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript", "Ruby", "Rust",
	"Java", "C", "C++", "SQL", "JSON", "YAML", "HTML", "CSS", "Markdown",
}

// DetectLanguage guesses the fence tag for an untagged code block. It
// returns "" when nothing is confident.
func DetectLanguage(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang([]byte(code)); safe {
		return fenceTag(lang)
	}

	for _, sig := range signatures {
		if sig.match(code, trimmed) {
			return sig.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier([]byte(code), classifierCandidates); safe && lang != "" {
		return fenceTag(lang)
	}
	return ""
}

func fenceTag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// yamlPairs counts lines shaped like "key: value" or "- item".
func yamlPairs(code string) int {
	n := 0
	for line := range strings.SplitSeq(code, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ": ") && !strings.ContainsAny(line, "({") && !strings.HasPrefix(line, `"`) {
			n++
		}
		if strings.HasPrefix(line, "- ") {
			n++
		}
	}
	return n
}
