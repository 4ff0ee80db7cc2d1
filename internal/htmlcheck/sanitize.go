package htmlcheck

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ignoredAttrs are stripped from every element during sanitize. The data-
// and aria- prefixes are handled separately.
var ignoredAttrs = map[string]struct{}{
	"id":       {},
	"class":    {},
	"style":    {},
	"src":      {},
	"href":     {},
	"alt":      {},
	"title":    {},
	"datetime": {},
}

func isIgnoredAttr(name string) bool {
	if _, ok := ignoredAttrs[name]; ok {
		return true
	}
	return strings.HasPrefix(name, "data-") || strings.HasPrefix(name, "aria-")
}

// Sanitize normalizes a document for structural-equality comparison: it
// strips the ignored attributes from every element and rewrites volatile
// substrings in text nodes to bracketed category placeholders (a UUID
// becomes "[id]"), leaving surrounding text untouched. The transform is
// idempotent: sanitizing an already sanitized document is a no-op.
func Sanitize(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		kept := node.Attr[:0]
		for _, attr := range node.Attr {
			if isIgnoredAttr(attr.Key) {
				continue
			}
			kept = append(kept, attr)
		}
		node.Attr = kept
	})

	forEachStrippedText(doc, func(_ string, node *html.Node) {
		for _, dp := range dynamicPatterns {
			node.Data = dp.Pattern.ReplaceAllString(node.Data, "["+dp.Name+"]")
		}
	})

	return doc.Html()
}
