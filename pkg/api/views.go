// Package api pkg/api/views.go handles view endpoints.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/hubview/hubview/pkg/models"
	"github.com/hubview/hubview/pkg/views"
)

func (s *APIServer) getViews(w http.ResponseWriter, _ *http.Request) {
	all, err := s.views.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "views.list_failed", err.Error())
		return
	}

	if all == nil {
		all = []models.View{}
	}

	writeJSON(w, all)
}

func (s *APIServer) createView(w http.ResponseWriter, r *http.Request) {
	var view models.View
	if err := json.NewDecoder(r.Body).Decode(&view); err != nil {
		writeError(w, http.StatusBadRequest, "request.invalid_body", err.Error())
		return
	}

	created, err := s.views.Create(&view)
	if err != nil {
		if errors.Is(err, views.ErrInvalidView) {
			writeError(w, http.StatusBadRequest, "view.invalid", err.Error())
			return
		}

		writeError(w, http.StatusInternalServerError, "view.create_failed", err.Error())

		return
	}

	writeJSON(w, created)
}

func (s *APIServer) getViewData(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	samples, err := s.views.ResolveID(id, time.Now())
	if err != nil {
		if errors.Is(err, views.ErrViewNotFound) {
			writeError(w, http.StatusNotFound, "view.not_found", "View not found")
			return
		}

		writeError(w, http.StatusInternalServerError, "view.resolve_failed", err.Error())

		return
	}

	writeJSON(w, samples)
}

// sampleRequest is the body of a manual sample injection.
type sampleRequest struct {
	Entity string  `json:"entity"`
	Field  string  `json:"field"`
	Value  string  `json:"value"`
	Time   float64 `json:"time,omitempty"`
}

func (s *APIServer) appendSample(w http.ResponseWriter, r *http.Request) {
	var req sampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request.invalid_body", err.Error())
		return
	}

	if req.Entity == "" || req.Field == "" {
		writeError(w, http.StatusBadRequest, "request.invalid_body", "entity and field are required")
		return
	}

	timestamp := time.Now()
	if req.Time > 0 {
		timestamp = time.Unix(0, int64(req.Time*float64(time.Second)))
	}

	sample, err := s.db.AppendSample(req.Entity, req.Field, timestamp, req.Value)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sample.append_failed", err.Error())
		return
	}

	writeJSON(w, sample)
}
