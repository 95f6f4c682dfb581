// internal/quiz/quiz_test.go
package quiz

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
)

// fakeRow feeds canned column values into Scan, or an error.
type fakeRow struct {
	err error
	q   Question
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.q.ID
	*dest[1].(*string) = r.q.Category
	*dest[2].(*int) = r.q.Difficulty
	*dest[3].(*string) = r.q.Text
	*dest[4].(*string) = r.q.Answer
	return nil
}

// fakeDB answers one row per difficulty tier.
type fakeDB struct {
	rows map[int]fakeRow
}

func (db fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	difficulty := args[1].(int)
	row, ok := db.rows[difficulty]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return row
}

func TestThreeQuestionsAllTiers(t *testing.T) {
	db := fakeDB{rows: map[int]fakeRow{
		1: {q: Question{ID: 1, Category: "history", Difficulty: 1, Text: "q1", Answer: "a1"}},
		2: {q: Question{ID: 2, Category: "history", Difficulty: 2, Text: "q2", Answer: "a2"}},
		3: {q: Question{ID: 3, Category: "history", Difficulty: 3, Text: "q3", Answer: "a3"}},
	}}

	questions, err := New(db).ThreeQuestions(context.Background(), "history")
	if err != nil {
		t.Fatalf("sampling failed: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}
	for i, q := range questions {
		if q.Difficulty != i+1 {
			t.Fatalf("expected ascending difficulties, got %d at position %d", q.Difficulty, i)
		}
	}
}

// A tier with no matching question is skipped without error.
func TestThreeQuestionsMissingTier(t *testing.T) {
	db := fakeDB{rows: map[int]fakeRow{
		1: {q: Question{ID: 1, Category: "history", Difficulty: 1, Text: "q1", Answer: "a1"}},
		3: {q: Question{ID: 3, Category: "history", Difficulty: 3, Text: "q3", Answer: "a3"}},
	}}

	questions, err := New(db).ThreeQuestions(context.Background(), "history")
	if err != nil {
		t.Fatalf("sampling failed: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].Difficulty != 1 || questions[1].Difficulty != 3 {
		t.Fatalf("unexpected difficulties: %d, %d", questions[0].Difficulty, questions[1].Difficulty)
	}
}
