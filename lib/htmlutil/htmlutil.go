package htmlutil

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// CleanText turns every unicode space (nbsp, thin space, ...) into a plain
// space, drops non-printable runes, trims and collapses inner whitespace.
func CleanText(s string) string {
	out := strings.Builder{}
	for _, c := range s {
		if unicode.IsSpace(c) {
			out.WriteRune(' ')
			continue
		}
		if unicode.IsPrint(c) {
			out.WriteRune(c)
		}
	}
	text := strings.Trim(out.String(), " ")
	return innerWhitespace.ReplaceAllString(text, " ")
}

// SelectionText is the cleaned text of all nodes in the selection.
func SelectionText(sel *goquery.Selection) string {
	var text strings.Builder
	for _, n := range sel.Nodes {
		text.WriteString(GetText(n))
	}
	return CleanText(text.String())
}

// FindText returns the cleaned text of the first element matching selector
// under sel, found is false when nothing matches.
func FindText(ctx context.Context, sel *goquery.Selection, selector string) (text string, found bool) {
	span := trace.SpanFromContext(ctx)

	match := sel.Find(selector).First()
	if match.Length() == 0 {
		return "", false
	}
	text = SelectionText(match)
	if span.IsRecording() {
		span.AddEvent("text", trace.WithAttributes(
			attribute.String("selector", selector),
			attribute.String("text", text),
		))
	}
	return text, true
}
