// internal/handlers/api.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/quizroom/quizroom/internal/coordinator"
	"github.com/quizroom/quizroom/internal/quiz"
	"github.com/quizroom/quizroom/internal/store"
)

// CreateSessionHandler creates a fresh session hosted by the caller and
// returns its code plus the host's player id.
func CreateSessionHandler(c *coordinator.Coordinator, logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PlayerName string `json:"playerName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerName == "" {
			http.Error(w, "playerName is required", http.StatusBadRequest)
			return
		}

		code, playerID, err := c.CreateSession(r.Context(), req.PlayerName)
		if err != nil {
			logger.Warnf("create session failed: %v", err)
			http.Error(w, "failed to create session", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code":     code,
			"playerId": playerID.String(),
		})
	}
}

// JoinSessionHandler adds the caller to an existing session by code.
// Unknown codes are a user-visible 404.
func JoinSessionHandler(c *coordinator.Coordinator, logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Code       string `json:"code"`
			PlayerName string `json:"playerName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" || req.PlayerName == "" {
			http.Error(w, "code and playerName are required", http.StatusBadRequest)
			return
		}

		playerID, err := c.JoinSession(r.Context(), req.Code, req.PlayerName)
		if errors.Is(err, store.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		if err != nil {
			logger.Warnf("join session %s failed: %v", req.Code, err)
			http.Error(w, "failed to join session", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"playerId": playerID.String(),
		})
	}
}

// ActivePlayerHandler reports whose turn it is in the session named by
// the "code" query parameter.
func ActivePlayerHandler(c *coordinator.Coordinator, logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "code is required", http.StatusBadRequest)
			return
		}

		player, ok, err := c.ActivePlayer(r.Context(), code)
		if errors.Is(err, store.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		if err != nil {
			logger.Warnf("active player lookup for %s failed: %v", code, err)
			http.Error(w, "failed to look up active player", http.StatusInternalServerError)
			return
		}

		resp := map[string]interface{}{
			"activePlayerId": nil,
		}
		if ok {
			resp["activePlayerId"] = player.ID.String()
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// QuizQuestionsHandler samples up to three questions (one per
// difficulty tier) for the requested category.
func QuizQuestionsHandler(q *quiz.Service, logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		if category == "" {
			http.Error(w, "category is required", http.StatusBadRequest)
			return
		}

		questions, err := q.ThreeQuestions(r.Context(), category)
		if err != nil {
			logger.Warnf("question sampling for category %s failed: %v", category, err)
			http.Error(w, "failed to fetch questions", http.StatusInternalServerError)
			return
		}
		if questions == nil {
			questions = []quiz.Question{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"questions": questions,
		})
	}
}
