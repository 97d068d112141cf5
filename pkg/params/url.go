package params

import (
	"net/http"
	"strings"
)

// sessionParams carry session credentials and never appear in links back to
// the current page.
var sessionParams = map[string]struct{}{
	"sid":             {},
	"force_sid":       {},
	"admin_sid":       {},
	"force_admin_sid": {},
	"stoken":          {},
}

// RequestURL returns the URL that rendered the current page, suitable for
// links back to it. Session id and challenge token parameters are removed
// and the remaining query keeps its order.
//
// Only GET-like requests with a query string produce a URL; POST requests and
// bare paths return "". The result is not HTML-escaped.
func RequestURL(r *http.Request) string {
	if r == nil || r.Method == http.MethodPost {
		return ""
	}

	raw := r.RequestURI
	if raw == "" && r.URL != nil {
		raw = r.URL.RequestURI()
	}
	path, query, ok := strings.Cut(raw, "?")
	if !ok {
		return ""
	}

	kept := make([]string, 0, strings.Count(query, "&")+1)
	for pair := range strings.SplitSeq(query, "&") {
		if pair == "" {
			continue
		}
		key, _, _ := strings.Cut(pair, "=")
		if _, drop := sessionParams[key]; drop {
			continue
		}
		kept = append(kept, pair)
	}

	if len(kept) == 0 {
		return path
	}
	return path + "?" + strings.Join(kept, "&")
}
