package web

import (
	"encoding/json"
	"net/http"

	"github.com/JonMunkholm/companysearch/internal/core"
	"github.com/JonMunkholm/companysearch/internal/logging"
	"github.com/JonMunkholm/companysearch/internal/web/templates"
)

// searchResponse is the JSON body of GET /api/search.
type searchResponse struct {
	SearchID string        `json:"search_id"`
	Status   core.Status   `json:"status"`
	Query    string        `json:"query"`
	Columns  []string      `json:"columns"`
	Count    int           `json:"count"`
	Records  []core.Record `json:"records"`
}

// handleSearchPage renders the search form. When q is present it runs one
// search and renders its outcome below the form.
func (s *Server) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	values := r.URL.Query()
	_, submitted := values["q"]

	data := templates.SearchPageData{
		Query:     values.Get("q"),
		Submitted: submitted,
		Animation: s.animation.Enabled(),
	}

	status := http.StatusOK
	if submitted {
		res, err := s.service.Search(ctx, data.Query)
		if err != nil {
			status = statusFor(err)
			msg := core.MapError(err)
			data.Error = &msg
			logging.FromContext(ctx).Error("search failed", "error", err, "code", msg.Code)
		}
		data.Result = res
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	templates.SearchPage(data).Render(ctx, w)
}

// handleResults runs one search and renders only its outcome. The page
// script swaps it in below the form instead of reloading the page.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")

	res, err := s.service.Search(ctx, query)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Results(templates.SearchPageData{Query: query, Submitted: true, Result: res}).Render(ctx, w)
}

// handleSearch runs one search and returns the result as JSON.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	res, err := s.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, r, searchResponse{
		SearchID: res.ID,
		Status:   res.Status,
		Query:    res.Query,
		Columns:  res.Columns,
		Count:    res.Count(),
		Records:  res.Records,
	})
}

// handleAnimation proxies the Lottie document, or answers 204 when it is unavailable.
func (s *Server) handleAnimation(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.animation.Fetch(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(doc)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		respondErrorJSON(w, notFoundMessage, http.StatusNotFound)
		return
	}
	respondErrorHTML(w, r, notFoundMessage, http.StatusNotFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]string{"status": "ok"})
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}
