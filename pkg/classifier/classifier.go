package classifier

import (
	"fmt"
	"net/url"
	"strings"
)

// Classifier decides whether an anchor href points at the scanned host and
// normalizes accepted hrefs to absolute URLs. It is stateless after
// construction; each href is judged on its own.
type Classifier struct {
	host      string // lowercase hostname used for matching
	authority string // host[:port] used when normalizing root-relative hrefs
	scheme    string
}

// New builds a Classifier from the seed URL. The seed must carry an http or
// https scheme and a hostname.
func New(seedURL string) (*Classifier, error) {
	u, err := url.Parse(seedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid seed URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("seed URL %q has no hostname", seedURL)
	}
	return &Classifier{
		host:      strings.ToLower(u.Hostname()),
		authority: strings.ToLower(u.Host),
		scheme:    u.Scheme,
	}, nil
}

// Host returns the hostname links are matched against.
func (c *Classifier) Host() string {
	return c.host
}

// Classify reports whether href is an internal link and, if so, its
// normalized absolute form. Root-relative hrefs are prefixed with the seed's
// scheme and authority (so a non-default port carries over); absolute http(s)
// hrefs are accepted unchanged when their hostname matches the seed's
// exactly. Subdomains are external. Everything else — fragments, mailto:,
// javascript:, protocol-relative //host paths, unparseable input — is
// rejected. Classification never fails: a malformed href is a rejection,
// not an error.
func (c *Classifier) Classify(href string) (string, bool) {
	if href == "" {
		return "", false
	}
	if strings.HasPrefix(href, "//") {
		// Protocol-relative: no scheme of its own, not root-relative either
		return "", false
	}
	if strings.HasPrefix(href, "/") {
		return c.scheme + "://" + c.authority + href, true
	}

	u, err := url.Parse(href)
	if err != nil || !u.IsAbs() {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if strings.ToLower(u.Hostname()) != c.host {
		return "", false
	}
	return href, true
}

// ClassifyAll filters hrefs down to the internal set, preserving encounter
// order. Duplicates on the page stay duplicates here.
func (c *Classifier) ClassifyAll(hrefs []string) []string {
	var internal []string
	for _, h := range hrefs {
		if link, ok := c.Classify(h); ok {
			internal = append(internal, link)
		}
	}
	return internal
}
