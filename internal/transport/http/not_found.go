package http

import "net/http"

// NotFoundHandler is the catch-all for paths no route claims, so unknown
// URLs get the same JSON error envelope as everything else.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "resource not found")
	})
}
