// Package api pkg/api/hub_config.go manages the hub connection
// configuration. A PUT here is what makes the relay drop its stream and
// reconnect against the new address.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hubview/hubview/pkg/db"
	"github.com/hubview/hubview/pkg/hub"
	"github.com/hubview/hubview/pkg/models"
)

// hubConfigView never echoes the token back.
type hubConfigView struct {
	Address   string    `json:"address"`
	UpdatedAt time.Time `json:"updated_at"`
}

type hubConfigRequest struct {
	Address string `json:"address"`
	Token   string `json:"token"`
}

func (s *APIServer) getHubConfig(w http.ResponseWriter, _ *http.Request) {
	conn, err := s.db.GetHubConnection()
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "hub.not_initialized", "No hub connection configured")
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, "hub.config_failed", err.Error())
		return
	}

	writeJSON(w, hubConfigView{Address: conn.Address, UpdatedAt: conn.UpdatedAt})
}

func (s *APIServer) putHubConfig(w http.ResponseWriter, r *http.Request) {
	var req hubConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request.invalid_body", err.Error())
		return
	}

	if req.Address == "" || req.Token == "" {
		writeError(w, http.StatusBadRequest, "request.invalid_body", "address and token are required")
		return
	}

	conn := &models.HubConnection{
		Address:   req.Address,
		Token:     req.Token,
		UpdatedAt: time.Now(),
	}

	if err := s.db.SaveHubConnection(conn); err != nil {
		writeError(w, http.StatusInternalServerError, "hub.config_failed", err.Error())
		return
	}

	// Swap the live handle last: loops snapshotting it from here on see
	// the new connection, and the relay restarts its stream.
	s.handle.Set(hub.NewClient(req.Address, req.Token))

	writeJSON(w, hubConfigView{Address: conn.Address, UpdatedAt: conn.UpdatedAt})
}

func (s *APIServer) deleteHubConfig(w http.ResponseWriter, _ *http.Request) {
	if err := s.db.DeleteHubConnection(); err != nil {
		writeError(w, http.StatusInternalServerError, "hub.config_failed", err.Error())
		return
	}

	s.handle.Clear()

	w.WriteHeader(http.StatusNoContent)
}
