// Package textparse is the default text-parsing collaborator: it turns raw
// message text into inline rich content nodes, linking mentions and URLs.
package textparse

import (
	"strings"
	"unicode"

	"heron-feed/internal/render"
)

// Parser implements render.TextParser.
type Parser struct{}

// New returns the default parser.
func New() *Parser {
	return &Parser{}
}

// Parse splits raw text into inline nodes. "@name" tokens become mention
// links carrying the referenced author name, "http(s)://" tokens become
// anchors, everything else is passed through as plain text. Empty input
// yields no nodes.
func (p *Parser) Parse(raw string) []*render.Node {
	if raw == "" {
		return nil
	}

	var nodes []*render.Node
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			nodes = append(nodes, render.Text(plain.String()))
			plain.Reset()
		}
	}

	for _, token := range splitInline(raw) {
		switch {
		case strings.HasPrefix(token, "@") && len(token) > 1:
			flush()
			name := token[1:]
			nodes = append(nodes, render.Element("a", "mention", render.Text(token)).
				WithAttr("data-author-name", name))
		case strings.HasPrefix(token, "http://") || strings.HasPrefix(token, "https://"):
			flush()
			nodes = append(nodes, render.Element("a", "link", render.Text(token)).
				WithAttr("href", token).
				WithAttr("target", "_blank"))
		default:
			plain.WriteString(token)
		}
	}
	flush()
	return nodes
}

// splitInline breaks text into word and whitespace runs, so that separators
// survive into the plain-text nodes unchanged.
func splitInline(raw string) []string {
	var tokens []string
	var current strings.Builder
	var inSpace bool

	for i, r := range raw {
		isSpace := unicode.IsSpace(r)
		if i > 0 && isSpace != inSpace {
			tokens = append(tokens, current.String())
			current.Reset()
		}
		inSpace = isSpace
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}
