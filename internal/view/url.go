package view

import (
	"net/url"
	"strings"
)

const linkFallback = "#"

// SafeLink returns raw when it is relative or uses http, https or mailto,
// and "#" otherwise.
func SafeLink(raw string) string {
	return safeURL(raw, linkFallback, "http", "https", "mailto")
}

// SafeSrc is SafeLink for image sources. Unsafe sources become empty.
func SafeSrc(raw string) string {
	return safeURL(raw, "", "http", "https")
}

func safeURL(raw, fallback string, schemes ...string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fallback
	}
	if u.Scheme == "" {
		return raw
	}
	for _, s := range schemes {
		if u.Scheme == s {
			return raw
		}
	}
	return fallback
}
