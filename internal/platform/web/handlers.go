package web

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/swat-arcade/internal/config"
	"github.com/vovakirdan/swat-arcade/internal/registry"
	"github.com/vovakirdan/swat-arcade/internal/scores"
)

// scoreList is one (game, difficulty) high-score list.
type scoreList struct {
	Game       string          `json:"game"`
	Difficulty int             `json:"difficulty"`
	Name       string          `json:"name,omitempty"`
	Scores     []scores.Record `json:"scores"`
}

type gameStats struct {
	Game        string    `json:"game"`
	Rounds      int       `json:"rounds"`
	HighScore   int       `json:"highScore"`
	AvgScore    float64   `json:"avgScore"`
	LongestPlay float64   `json:"longestPlay"` // seconds
	LastPlayed  time.Time `json:"lastPlayed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, registry.List())
}

// gameScores returns every list of a game, one per difficulty.
func (s *Server) gameScores(w http.ResponseWriter, r *http.Request) {
	info, ok := s.game(w, r)
	if !ok {
		return
	}

	n := max(1, len(info.Difficulties))
	lists := make([]scoreList, 0, n)
	for d := range n {
		lists = append(lists, s.list(info, d))
	}
	writeJSON(w, http.StatusOK, lists)
}

// difficultyScores returns one list. The difficulty is a preset name
// (easy, normal, hard) or a 1-based level number.
func (s *Server) difficultyScores(w http.ResponseWriter, r *http.Request) {
	info, ok := s.game(w, r)
	if !ok {
		return
	}

	d, err := config.ParseDifficulty(chi.URLParam(r, "difficulty"), max(1, len(info.Difficulties)))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.list(info, d))
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "round history unavailable"})
		return
	}

	all, err := s.store.GetAllGamesStats()
	if err != nil {
		s.logger.Error("cannot read stats", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "cannot read stats"})
		return
	}

	out := make([]gameStats, 0, len(all))
	for _, st := range all {
		out = append(out, gameStats{
			Game:        st.GameID,
			Rounds:      st.RoundsCount,
			HighScore:   st.HighScore,
			AvgScore:    st.AvgScore,
			LongestPlay: st.LongestPlay.Seconds(),
			LastPlayed:  st.LastPlayed,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Game < out[j].Game })
	writeJSON(w, http.StatusOK, out)
}

// game resolves the {game} URL parameter, writing a 404 when unknown.
func (s *Server) game(w http.ResponseWriter, r *http.Request) (registry.GameInfo, bool) {
	id := chi.URLParam(r, "game")
	info, ok := registry.Info(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown game: " + id})
	}
	return info, ok
}

func (s *Server) list(info registry.GameInfo, d int) scoreList {
	l := scoreList{Game: info.ID, Difficulty: d, Scores: []scores.Record{}}
	if d < len(info.Difficulties) {
		l.Name = info.Difficulties[d]
	}
	if s.scores != nil {
		if top := s.scores.Top(info.ID, d); len(top) > 0 {
			l.Scores = top
		}
	}
	return l
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
