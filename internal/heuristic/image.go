package heuristic

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// imageSelectors are tried in order: the Open Graph meta tag is the most
// reliable signal, then image elements whose class hints at recipe imagery.
var imageSelectors = []string{
	`meta[property="og:image"]`,
	`meta[name="twitter:image"]`,
	`img[class*="recipe"]`,
	`img[class*="hero"]`,
	`img[class*="featured"]`,
	`img[itemprop="image"]`,
}

// DiscoverImage locates a representative image URL for the page. A relative
// path is resolved against the source URL; an empty string means nothing
// plausible was found.
func DiscoverImage(doc *goquery.Document, sourceURL string) string {
	for _, sel := range imageSelectors {
		sn := doc.Find(sel).First()
		if sn.Length() == 0 {
			continue
		}
		attr := "src"
		if sn.Is("meta") {
			attr = "content"
		}
		if v, ok := sn.Attr(attr); ok && v != "" {
			return resolveURL(sourceURL, v)
		}
	}
	return ""
}

// resolveURL makes ref absolute against base. On any parse failure ref is
// returned untouched.
func resolveURL(base, ref string) string {
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if refURL.IsAbs() {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
