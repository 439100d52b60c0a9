package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/game-arcade/internal/service"
	"github.com/sakif/game-arcade/internal/session"
)

// ScoreHandler persists high-score submissions from the game page.
type ScoreHandler struct {
	scores   *service.ScoreService
	sessions *session.Manager
	logger   *slog.Logger
}

// NewScoreHandler creates a ScoreHandler.
func NewScoreHandler(scores *service.ScoreService, sessions *session.Manager, logger *slog.Logger) *ScoreHandler {
	return &ScoreHandler{scores: scores, sessions: sessions, logger: logger}
}

// scoreRequest is the JSON body of POST /update_high_score.
type scoreRequest struct {
	HighScore int64 `json:"high_score"`
}

// HandleUpdateHighScore records a new high score for the session's own user.
//
// HTTP: POST /update_high_score, body {"high_score": n}, response 204 empty.
//
// This endpoint checks the session itself instead of sitting behind the
// redirecting middleware: an anonymous call is a silent no-op that still
// returns 204, and a missing or malformed body counts as a score of 0. The
// update targets the session's user id, so a client can never write another
// account's row. The value is written as-is — no floor, no monotonicity.
func (h *ScoreHandler) HandleUpdateHighScore(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.FromRequest(r)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var body scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		body = scoreRequest{}
	}

	if err := h.scores.SetHighScore(r.Context(), sess.UserID, body.HighScore); err != nil {
		h.logger.Error("high score update failed",
			slog.Int64("userID", sess.UserID),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
