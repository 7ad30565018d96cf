package api

import (
	"context"
	"net/http"
)

// handleFeedRSS serves the latest polls as RSS 2.0.
func (h *Handler) handleFeedRSS(w http.ResponseWriter, r *http.Request) {
	h.writeFeed(w, r, "application/rss+xml; charset=utf-8", h.feed.RSS)
}

func (h *Handler) handleFeedAtom(w http.ResponseWriter, r *http.Request) {
	h.writeFeed(w, r, "application/atom+xml; charset=utf-8", h.feed.Atom)
}

func (h *Handler) writeFeed(w http.ResponseWriter, r *http.Request, contentType string, render func(context.Context) (string, error)) {
	doc, err := render(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
