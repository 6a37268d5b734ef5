// Package htmlutil contains goquery helpers for the label:value table
// layouts the registry pages are built from.
package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
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

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// Clean collapses the text content of a scraped cell into a single
// trimmed, single-spaced line. Registry pages pad cells with &nbsp;
// and newlines rather freely.
func Clean(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = removeNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

func Text(sel *goquery.Selection) string {
	return Clean(sel.Text())
}

// FindByText returns the first element matching selector whose cleaned
// text is exactly text. The second return is false when there is none.
func FindByText(doc *goquery.Document, selector, text string) (*goquery.Selection, bool) {
	return matchByText(doc.Find(selector), text, false)
}

// FindLastByText is FindByText but returns the final match in document
// order. Transcript pages repeat one label per historical term, the last
// occurrence belongs to the most recent term.
func FindLastByText(doc *goquery.Document, selector, text string) (*goquery.Selection, bool) {
	return matchByText(doc.Find(selector), text, true)
}

func matchByText(sel *goquery.Selection, text string, last bool) (*goquery.Selection, bool) {
	var found *goquery.Selection
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if Clean(s.Text()) != text {
			return true
		}
		found = s
		return last
	})
	if found == nil {
		return nil, false
	}
	return found, true
}

// NextCellText returns the cleaned text of the cell following a label
// cell, the usual "<td>Label</td><td>value</td>" arrangement.
func NextCellText(label *goquery.Selection) (string, bool) {
	next := label.NextFiltered("td")
	if next.Length() == 0 {
		return "", false
	}
	return Text(next), true
}

// AnchorHrefByText returns the href of the first anchor whose cleaned
// text is exactly text.
func AnchorHrefByText(doc *goquery.Document, text string) (string, bool) {
	sel, ok := matchByText(doc.Find("a"), text, false)
	if !ok {
		return "", false
	}
	href, exists := sel.Attr("href")
	if !exists {
		return "", false
	}
	return href, true
}
