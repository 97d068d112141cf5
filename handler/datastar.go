package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	DataStarAcceptHeader = "text/event-stream"
	DataStarQueryParam   = "datastar"
)

// Element patch modes used by page partials and error toasts.
const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchPrepend = datastar.ElementPatchModePrepend
)

// IsDataStar reports whether the request came from the DataStar client,
// which expects server-sent events instead of HTML or redirects.
func IsDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	if r.URL.Query().Has(DataStarQueryParam) {
		return true
	}
	return strings.Contains(r.Header.Get("Content-Type"), "application/x-datastar")
}
