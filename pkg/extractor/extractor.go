package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Extract returns the raw href value of every anchor element in the
// document, in document order. Parsing is lenient: net/html repairs broken
// markup where it can, and anchors without an href are skipped rather than
// reported.
func Extract(body []byte) ([]string, error) {
	doc, err := parse(body)
	if err != nil {
		return nil, err
	}

	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			hrefs = append(hrefs, strings.TrimSpace(href))
		}
	})
	return hrefs, nil
}

// Title returns the text of the document's first <title> element, or "" when
// there is none or the body does not parse.
func Title(body []byte) string {
	doc, err := parse(body)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func parse(body []byte) (*goquery.Document, error) {
	node, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return goquery.NewDocumentFromNode(node), nil
}
