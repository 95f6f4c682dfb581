// internal/quiz/quiz.go

// Package quiz samples questions from the relational store. It is
// stateless: each request pulls at most one random question per
// difficulty tier for a category.
package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Question is one row of the questions table.
type Question struct {
	ID         int64  `json:"id"`
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"`
	Text       string `json:"question"`
	Answer     string `json:"answer"`
}

// Querier is the slice of the pgx pool the service needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service answers question-sampling queries against Postgres.
type Service struct {
	db Querier
}

// New wraps a pgx pool (or any Querier) in a sampling service.
func New(db Querier) *Service {
	return &Service{db: db}
}

// ThreeQuestions returns up to three questions for the category, one
// each of difficulty 1, 2, and 3, chosen uniformly at random among the
// matches. A tier with no matching question is skipped, not an error,
// so fewer than three results can come back.
func (s *Service) ThreeQuestions(ctx context.Context, category string) ([]Question, error) {
	const q = `
		SELECT id, question_category, question_difficulty, question_text, question_answer
		FROM questions
		WHERE question_category = $1
		AND question_difficulty = $2
		ORDER BY random()
		LIMIT 1
	`

	var questions []Question
	for difficulty := 1; difficulty <= 3; difficulty++ {
		var question Question
		err := s.db.QueryRow(ctx, q, category, difficulty).Scan(
			&question.ID,
			&question.Category,
			&question.Difficulty,
			&question.Text,
			&question.Answer,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("sample question (category %s, difficulty %d): %w", category, difficulty, err)
		}
		questions = append(questions, question)
	}
	return questions, nil
}
