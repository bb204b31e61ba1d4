package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"aimrange/internal/ledger"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// handleLeaderboard serves /api/leaderboard?mode=&cat=&limit=. An empty mode
// ranks across every mode.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cat, err := ledger.ParseCategory(q.Get("cat"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	limit := defaultLeaderboardLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxLeaderboardLimit)
	}

	entries, err := s.Ledger.Leaderboard(r.Context(), q.Get("mode"), cat, limit)
	if err != nil {
		log.Printf("[Analytics] leaderboard error: %v\n", err)
		http.Error(w, "Error loading leaderboard", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []ledger.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	profile, err := s.Analytics.Profile(r.Context(), r.PathValue("id"))
	if errors.Is(err, ledger.ErrNotFound) {
		http.Error(w, "Player not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[Analytics] player stats error: %v\n", err)
		http.Error(w, "Error loading player", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
