package report

import (
	"net/url"
	"strings"

	"github.com/dmitrymomot/probekit/pkg/classify"
)

// PrepareURL makes base ready for a query string to be appended: a URL
// without "?" gets one, a URL with a query gets a trailing "&".
func PrepareURL(base string) string {
	if strings.Contains(base, "?") {
		if !strings.HasSuffix(base, "&") && !strings.HasSuffix(base, "?") {
			base += "&"
		}
		return base
	}
	return base + "?"
}

// QueryString joins params in order. Keys and values are escaped the way
// browsers escape URI components, so spaces become %20.
func QueryString(params []classify.Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escape(p.Key))
		b.WriteByte('=')
		b.WriteString(escape(p.Value))
	}
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
