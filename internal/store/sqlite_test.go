package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore err: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetOrCreateSessionIdempotent(t *testing.T) {
	s := newTestStore(t)

	first, err := s.GetOrCreateSession("sess-1", "tr")
	if err != nil {
		t.Fatalf("GetOrCreateSession err: %v", err)
	}
	if first.Lang != "tr" {
		t.Fatalf("expected default lang tr, got %q", first.Lang)
	}

	if err := s.SetSessionLanguage("sess-1", "en"); err != nil {
		t.Fatalf("SetSessionLanguage err: %v", err)
	}

	second, err := s.GetOrCreateSession("sess-1", "tr")
	if err != nil {
		t.Fatalf("GetOrCreateSession err: %v", err)
	}
	if second.Lang != "en" {
		t.Fatalf("expected persisted lang en, got %q", second.Lang)
	}
}

func TestSetSessionLanguageMissingSession(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSessionLanguage("ghost", "en"); err == nil {
		t.Fatal("expected error for unknown session")
	}
}

func TestAppendAndReplaceLastTurn(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetOrCreateSession("sess-1", "tr"); err != nil {
		t.Fatalf("GetOrCreateSession err: %v", err)
	}

	provisional := &Turn{SessionID: "sess-1", Question: "How is Squat performed?", Status: TurnPending}
	if err := s.AppendTurn(provisional); err != nil {
		t.Fatalf("AppendTurn err: %v", err)
	}

	completed := &Turn{SessionID: "sess-1", Question: "How is Squat performed?", Answer: "<p>Bend your knees.</p>", Status: TurnAnswered}
	if err := s.ReplaceLastTurn(completed); err != nil {
		t.Fatalf("ReplaceLastTurn err: %v", err)
	}

	turns, err := s.TurnsBySession("sess-1")
	if err != nil {
		t.Fatalf("TurnsBySession err: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("expected exactly one stored turn, got %d", len(turns))
	}
	if turns[0].ID != provisional.ID {
		t.Fatalf("replace created a new row: got id %d want %d", turns[0].ID, provisional.ID)
	}
	if turns[0].Status != TurnAnswered || turns[0].Answer == "" {
		t.Fatalf("turn not completed in place: %+v", turns[0])
	}
}

func TestReplaceLastTurnOnEmptyLogAppends(t *testing.T) {
	s := newTestStore(t)

	turn := &Turn{SessionID: "sess-1", Question: "hi", Answer: "<p>hello</p>", Status: TurnAnswered}
	if err := s.ReplaceLastTurn(turn); err != nil {
		t.Fatalf("ReplaceLastTurn err: %v", err)
	}

	turns, err := s.TurnsBySession("sess-1")
	if err != nil {
		t.Fatalf("TurnsBySession err: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("expected fallback append, got %d turns", len(turns))
	}
}

func TestTurnsBySessionOrdering(t *testing.T) {
	s := newTestStore(t)

	for _, q := range []string{"first", "second", "third"} {
		if err := s.AppendTurn(&Turn{SessionID: "sess-1", Question: q, Answer: "a", Status: TurnAnswered}); err != nil {
			t.Fatalf("AppendTurn err: %v", err)
		}
	}

	turns, err := s.TurnsBySession("sess-1")
	if err != nil {
		t.Fatalf("TurnsBySession err: %v", err)
	}
	if len(turns) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(turns))
	}
	for i, want := range []string{"first", "second", "third"} {
		if turns[i].Question != want {
			t.Fatalf("turn %d out of order: got %q want %q", i, turns[i].Question, want)
		}
	}
}

func TestClearTurnsScopedToSession(t *testing.T) {
	s := newTestStore(t)

	if err := s.AppendTurn(&Turn{SessionID: "sess-1", Question: "q1", Answer: "a", Status: TurnAnswered}); err != nil {
		t.Fatalf("AppendTurn err: %v", err)
	}
	if err := s.AppendTurn(&Turn{SessionID: "sess-2", Question: "q2", Answer: "a", Status: TurnAnswered}); err != nil {
		t.Fatalf("AppendTurn err: %v", err)
	}

	if err := s.ClearTurns("sess-1"); err != nil {
		t.Fatalf("ClearTurns err: %v", err)
	}

	cleared, _ := s.TurnsBySession("sess-1")
	if len(cleared) != 0 {
		t.Fatalf("expected sess-1 cleared, got %d turns", len(cleared))
	}
	kept, _ := s.TurnsBySession("sess-2")
	if len(kept) != 1 {
		t.Fatalf("expected sess-2 untouched, got %d turns", len(kept))
	}
}

func TestExerciseChunkRoundTrip(t *testing.T) {
	s := newTestStore(t)

	chunk := &ExerciseChunk{Exercise: "squat", Content: "Bend your knees.", Embedding: []float32{0.1, 0.2}}
	if err := s.createExerciseChunk(chunk); err != nil {
		t.Fatalf("createExerciseChunk err: %v", err)
	}

	chunks, err := s.AllExerciseChunks()
	if err != nil {
		t.Fatalf("AllExerciseChunks err: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Exercise != "squat" || len(chunks[0].Embedding) != 2 {
		t.Fatalf("chunk not restored: %+v", chunks[0])
	}

	if err := s.ClearExerciseChunks(); err != nil {
		t.Fatalf("ClearExerciseChunks err: %v", err)
	}
	chunks, _ = s.AllExerciseChunks()
	if len(chunks) != 0 {
		t.Fatalf("expected chunks cleared, got %d", len(chunks))
	}
}
