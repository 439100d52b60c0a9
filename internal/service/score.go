package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/game-arcade/internal/repository"
)

// ScoreService persists high-score updates.
type ScoreService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewScoreService creates a ScoreService.
func NewScoreService(users repository.UserRepository, logger *slog.Logger) *ScoreService {
	return &ScoreService{users: users, logger: logger}
}

// SetHighScore overwrites the stored high score for userID.
//
// The caller has already proven the session, and a session can only name its
// own user id, so no further authorization applies. Any integer value is
// accepted — lower than the current score, negative, whatever the game sends.
// Last write wins under concurrent updates.
func (s *ScoreService) SetHighScore(ctx context.Context, userID, score int64) error {
	if err := s.users.UpdateHighScore(ctx, userID, score); err != nil {
		return fmt.Errorf("service/score: setting high score for user %d: %w", userID, err)
	}

	s.logger.Debug("high score updated",
		slog.Int64("userID", userID),
		slog.Int64("score", score),
	)
	return nil
}
