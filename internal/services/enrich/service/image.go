package service

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// logoOrPlaceholder rejects Open Graph images that are clearly site
// furniture rather than the deceased's photo.
var logoOrPlaceholder = regexp.MustCompile(`(?i)logo|placeholder|default[-_]?og|og[-_]?default|sprite|favicon|banner|share[-_]?image`)

// obitImageClass marks containers likely to hold the obituary portrait.
var obitImageClass = regexp.MustCompile(`(?i)obit|photo|portrait|deceased|memorial`)

// siteImageSelectors maps host suffixes to an attribute probe run before
// the generic passes. Each returns the candidate src for a node or "".
var siteImageSelectors = map[string]func(n *html.Node) string{
	"legacy.com": func(n *html.Node) string {
		if n.Data == "img" && strings.Contains(attr(n, "class"), "obit-image") {
			return attr(n, "src")
		}
		return ""
	},
	"dignitymemorial.com": func(n *html.Node) string {
		if n.Data == "img" && strings.Contains(attr(n, "class"), "decedent") {
			return attr(n, "src")
		}
		return ""
	},
}

// ExtractImageURL finds the best obituary image in raw HTML, in priority
// order: a site-specific selector for the page's host, the Open Graph
// image (filtered against logo/placeholder patterns), the Twitter card
// image, then <img> elements inside containers whose class smells like an
// obituary photo block. Relative URLs are resolved against pageURL.
func ExtractImageURL(rawHTML, pageURL string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	base, _ := url.Parse(pageURL)

	if sel := selectorFor(base); sel != nil {
		if src := walkFirst(doc, sel); src != "" {
			return resolve(base, src)
		}
	}

	if og := metaContent(doc, "property", "og:image"); og != "" && !logoOrPlaceholder.MatchString(og) {
		return resolve(base, og)
	}
	if tw := metaContent(doc, "name", "twitter:image"); tw != "" && !logoOrPlaceholder.MatchString(tw) {
		return resolve(base, tw)
	}

	if src := walkFirst(doc, imgInObitContainer); src != "" {
		return resolve(base, src)
	}
	return ""
}

func selectorFor(base *url.URL) func(*html.Node) string {
	if base == nil {
		return nil
	}
	host := strings.ToLower(base.Host)
	for suffix, sel := range siteImageSelectors {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return sel
		}
	}
	return nil
}

// imgInObitContainer matches an <img> whose own class, or any ancestor
// class, looks like an obituary photo container.
// Ancestors are checked by walking the node's Parent chain.
func imgInObitContainer(n *html.Node) string {
	if n.Data != "img" {
		return ""
	}
	if obitImageClass.MatchString(attr(n, "class")) {
		return attr(n, "src")
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && obitImageClass.MatchString(attr(p, "class")) {
			return attr(n, "src")
		}
	}
	return ""
}

func walkFirst(n *html.Node, probe func(*html.Node) string) string {
	if n.Type == html.ElementNode {
		if src := probe(n); src != "" {
			return src
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if src := walkFirst(c, probe); src != "" {
			return src
		}
	}
	return ""
}

func metaContent(doc *html.Node, attrName, attrValue string) string {
	return walkFirst(doc, func(n *html.Node) string {
		if n.Data != "meta" {
			return ""
		}
		if strings.EqualFold(attr(n, attrName), attrValue) {
			return attr(n, "content")
		}
		return ""
	})
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func resolve(base *url.URL, src string) string {
	u, err := url.Parse(strings.TrimSpace(src))
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
