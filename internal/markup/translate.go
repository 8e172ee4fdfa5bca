// Package markup converts the generated markdown digest into Telegram HTML
// and splits it into messages that fit the Bot API size limit.
package markup

import (
	"regexp"
	"strings"
)

// Rule is a single pattern substitution. Rules are applied in order; each rule
// must not produce text that an earlier rule would have matched.
type Rule struct {
	Name    string
	pattern *regexp.Regexp
	repl    string
}

// Apply runs the substitution over the whole input.
func (r Rule) Apply(s string) string {
	return r.pattern.ReplaceAllString(s, r.repl)
}

// Rules is the ordered markdown-to-HTML rule chain. Header lines become bold
// lines, then bold spans, then italic, then links. The italic pattern requires
// a leading whitespace boundary so it never eats underscores inside URLs or
// snake_case words.
var Rules = []Rule{
	{"header", regexp.MustCompile(`(?m)^#{1,2}[ \t]+(.+)$`), "<b>$1</b>"},
	{"bold", regexp.MustCompile(`\*\*([^*\n]+)\*\*`), "<b>$1</b>"},
	{"bold-single", regexp.MustCompile(`\*([^*\n]+)\*`), "<b>$1</b>"},
	{"italic", regexp.MustCompile(`(^|\s)_([^_\n]+)_`), "$1<i>$2</i>"},
	{"link", regexp.MustCompile(`\[([^\]\n]+)\]\(([^)\s]+)\)`), `<a href="$2">$1</a>`},
}

// Translate converts a markdown digest into Telegram HTML. Unbalanced markers
// are left as literal text; empty input yields empty output.
func Translate(doc string) string {
	out := doc
	for _, r := range Rules {
		out = r.Apply(out)
	}
	return out
}

// TranslateEscaped escapes &, < and > before applying the rule chain, so any
// raw HTML in the generated document is neutralized. The plain Translate is
// the default; escaping is a configuration choice.
func TranslateEscaped(doc string) string {
	esc := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(doc)
	return Translate(esc)
}
