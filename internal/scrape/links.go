package scrape

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// profileLinks scans every anchor in the document and returns the absolute
// URLs whose resolved href matches pattern, in document order with
// duplicates preserved (the caller's LinkSet dedups).
func profileLinks(pageHTML, baseURL string, pattern *regexp.Regexp) ([]string, error) {
	doc, err := htmlquery.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("parse directory document: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	var links []string
	for _, node := range htmlquery.Find(doc, "//a[@href]") {
		href := strings.TrimSpace(attrVal(node, "href"))
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "javascript:") ||
			strings.HasPrefix(href, "mailto:") ||
			strings.HasPrefix(href, "tel:") {
			continue
		}

		parsed, err := url.Parse(href)
		if err != nil {
			continue
		}
		resolved := base.ResolveReference(parsed)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			continue
		}
		resolved.Fragment = ""

		abs := resolved.String()
		if pattern.MatchString(abs) {
			links = append(links, abs)
		}
	}

	return links, nil
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
