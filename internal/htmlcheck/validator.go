// Package htmlcheck assesses whether an HTML response is stable enough for
// snapshot-style comparison: free of volatile substrings, generated
// attribute names and structural omissions. It also offers a sanitize
// transform that normalizes a document for structural equality checks.
package htmlcheck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const excerptLen = 50

// dynamicPattern is one category of volatile content searched for as a
// substring inside text and attribute values.
type dynamicPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// dynamicPatterns is ordered; the first matching category is reported per
// text or attribute.
var dynamicPatterns = []dynamicPattern{
	{"timestamp", regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)},
	{"id", regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)},
	{"random", regexp.MustCompile(`[a-zA-Z0-9]{32}`)},
	{"csrf", regexp.MustCompile(`csrf_token`)},
	{"session", regexp.MustCompile(`session_id`)},
}

var (
	unstableClassMarkers = []string{"dynamic", "random", "temp"}
	trailingDigits       = regexp.MustCompile(`[0-9]+$`)
	clockPrefix          = regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}`)
	digitsOnly           = regexp.MustCompile(`^\d+$`)
)

// Report is the outcome of one document validation.
type Report struct {
	Success bool
	Issues  []string
}

// Validate scans an HTML document for volatility. It is a total function:
// an unparseable document is itself reported as an issue, never an error.
func Validate(htmlContent string) Report {
	if strings.TrimSpace(htmlContent) == "" {
		return Report{Success: true}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return Report{Issues: []string{fmt.Sprintf("unparseable html: %v", err)}}
	}

	var issues []string
	issues = append(issues, checkDynamicContent(doc)...)
	issues = append(issues, checkUnstableAttributes(doc)...)
	issues = append(issues, checkUnstableStructure(doc)...)
	issues = append(issues, checkUnstableText(doc)...)

	return Report{Success: len(issues) == 0, Issues: issues}
}

// checkDynamicContent searches every stripped text node and every attribute
// value for the volatile patterns, one issue per match location.
func checkDynamicContent(doc *goquery.Document) []string {
	var issues []string

	forEachStrippedText(doc, func(text string, _ *html.Node) {
		for _, dp := range dynamicPatterns {
			if dp.Pattern.MatchString(text) {
				issues = append(issues, fmt.Sprintf(
					"dynamic content found: %s in text: %s", dp.Name, excerpt(text)))
				break
			}
		}
	})

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		for _, attr := range node.Attr {
			for _, dp := range dynamicPatterns {
				if dp.Pattern.MatchString(attr.Val) {
					issues = append(issues, fmt.Sprintf(
						"dynamic content found: %s in attribute %s of tag %s: %s",
						dp.Name, attr.Key, node.Data, excerpt(attr.Val)))
					break
				}
			}
		}
	})

	return issues
}

// checkUnstableAttributes flags generated-looking class names and IDs with
// numeric suffixes (a heuristic for auto-incremented identifiers).
func checkUnstableAttributes(doc *goquery.Document) []string {
	var issues []string

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if class, ok := sel.Attr("class"); ok {
			for _, name := range strings.Fields(class) {
				for _, marker := range unstableClassMarkers {
					if strings.Contains(name, marker) {
						issues = append(issues, fmt.Sprintf("unstable class name found: %s", name))
						break
					}
				}
			}
		}

		if id, ok := sel.Attr("id"); ok && trailingDigits.MatchString(id) {
			issues = append(issues, fmt.Sprintf("unstable id found: %s", id))
		}
	})

	return issues
}

// checkUnstableStructure enforces the structural assumptions snapshot
// comparison relies on: grouped tables and CSRF-protected forms.
func checkUnstableStructure(doc *goquery.Document) []string {
	var issues []string

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if table.Find("thead").Length() == 0 || table.Find("tbody").Length() == 0 {
			issues = append(issues, "table missing thead or tbody elements")
		}
	})

	doc.Find("form").Each(func(_ int, form *goquery.Selection) {
		if form.Find(`input[type="hidden"][name="csrf_token"]`).Length() == 0 {
			issues = append(issues, "form missing csrf_token hidden input")
		}
	})

	return issues
}

// checkUnstableText flags clock-shaped prefixes and digit-only text nodes
// as likely dynamic numeric/time values.
func checkUnstableText(doc *goquery.Document) []string {
	var issues []string

	forEachStrippedText(doc, func(text string, _ *html.Node) {
		if clockPrefix.MatchString(text) {
			issues = append(issues, fmt.Sprintf("timestamp found in text: %s", text))
		}
		if digitsOnly.MatchString(text) {
			issues = append(issues, fmt.Sprintf("dynamic number found in text: %s", text))
		}
	})

	return issues
}

// forEachStrippedText visits every text node whose trimmed content is
// non-empty, in document order.
func forEachStrippedText(doc *goquery.Document, fn func(text string, node *html.Node)) {
	for _, root := range doc.Selection.Nodes {
		walkTextNodes(root, fn)
	}
}

func walkTextNodes(n *html.Node, fn func(text string, node *html.Node)) {
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			fn(text, n)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkTextNodes(c, fn)
	}
}

func excerpt(s string) string {
	if len(s) <= excerptLen {
		return s
	}
	return s[:excerptLen] + "..."
}
