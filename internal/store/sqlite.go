package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"formrehberim.com/form-guide/internal/logger"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS sessions (
        id TEXT PRIMARY KEY, -- UUID
        lang TEXT NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS turns (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        session_id TEXT NOT NULL,
        question TEXT NOT NULL,
        answer TEXT NOT NULL DEFAULT '',
        status TEXT NOT NULL CHECK (status IN ('pending', 'answered', 'failed')),
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        FOREIGN KEY (session_id) REFERENCES sessions (id)
    );

    CREATE TABLE IF NOT EXISTS exercise_chunks (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        exercise TEXT NOT NULL,
        content TEXT NOT NULL,
        embedding_json TEXT -- JSON string of []float32
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

// Session methods

func (s *SQLiteStore) GetSession(sessionID string) (*Session, error) {
	var sess Session
	err := s.db.QueryRow("SELECT id, lang, created_at FROM sessions WHERE id = ?", sessionID).
		Scan(&sess.ID, &sess.Lang, &sess.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Session not found
		}
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return &sess, nil
}

func (s *SQLiteStore) GetOrCreateSession(sessionID, defaultLang string) (*Session, error) {
	sess, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		return sess, nil
	}

	now := time.Now()
	_, err = s.db.Exec("INSERT INTO sessions (id, lang, created_at) VALUES (?, ?, ?)", sessionID, defaultLang, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}
	return &Session{ID: sessionID, Lang: defaultLang, CreatedAt: now}, nil
}

func (s *SQLiteStore) SetSessionLanguage(sessionID, lang string) error {
	res, err := s.db.Exec("UPDATE sessions SET lang = ? WHERE id = ?", lang, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update session language: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("session not found, language not updated")
	}
	return nil
}

// Turn methods (the per-session conversation log)

func (s *SQLiteStore) AppendTurn(turn *Turn) error {
	turn.CreatedAt = time.Now()
	if turn.Status == "" {
		turn.Status = TurnPending
	}

	stmt, err := s.db.Prepare("INSERT INTO turns (session_id, question, answer, status, created_at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare turn insert: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(turn.SessionID, turn.Question, turn.Answer, turn.Status, turn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to execute turn insert: %w", err)
	}
	turn.ID, _ = res.LastInsertId()
	return nil
}

// ReplaceLastTurn overwrites the most recent turn of a session in place.
// On an empty log it falls back to an append so a completed answer is never
// lost to a missing provisional row.
func (s *SQLiteStore) ReplaceLastTurn(turn *Turn) error {
	var lastID int64
	err := s.db.QueryRow("SELECT id FROM turns WHERE session_id = ? ORDER BY id DESC LIMIT 1", turn.SessionID).Scan(&lastID)
	if err != nil {
		if err == sql.ErrNoRows {
			return s.AppendTurn(turn)
		}
		return fmt.Errorf("failed to find last turn: %w", err)
	}

	stmt, err := s.db.Prepare("UPDATE turns SET question = ?, answer = ?, status = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare turn update: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(turn.Question, turn.Answer, turn.Status, lastID); err != nil {
		return fmt.Errorf("failed to execute turn update: %w", err)
	}
	turn.ID = lastID
	return nil
}

func (s *SQLiteStore) TurnsBySession(sessionID string) ([]Turn, error) {
	rows, err := s.db.Query("SELECT id, session_id, question, answer, status, created_at FROM turns WHERE session_id = ? ORDER BY id ASC", sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Question, &t.Answer, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn row: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (s *SQLiteStore) ClearTurns(sessionID string) error {
	if _, err := s.db.Exec("DELETE FROM turns WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to clear turns: %w", err)
	}
	return nil
}

// ExerciseChunk methods (the precomputed similarity index)

func (s *SQLiteStore) createExerciseChunk(chunk *ExerciseChunk) error {
	embeddingBytes, err := json.Marshal(chunk.Embedding)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}
	chunk.EmbeddingJSON = string(embeddingBytes)

	stmt, err := s.db.Prepare("INSERT INTO exercise_chunks (exercise, content, embedding_json) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare exercise_chunk insert: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(chunk.Exercise, chunk.Content, chunk.EmbeddingJSON)
	if err != nil {
		return fmt.Errorf("failed to execute exercise_chunk insert: %w", err)
	}
	chunk.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) AllExerciseChunks() ([]ExerciseChunk, error) {
	rows, err := s.db.Query("SELECT id, exercise, content, embedding_json FROM exercise_chunks")
	if err != nil {
		return nil, fmt.Errorf("failed to query exercise_chunks: %w", err)
	}
	defer rows.Close()

	var chunks []ExerciseChunk
	for rows.Next() {
		var chunk ExerciseChunk
		var embeddingJSON string
		if err := rows.Scan(&chunk.ID, &chunk.Exercise, &chunk.Content, &embeddingJSON); err != nil {
			return nil, fmt.Errorf("failed to scan exercise_chunk row: %w", err)
		}
		if embeddingJSON != "" {
			if err := json.Unmarshal([]byte(embeddingJSON), &chunk.Embedding); err != nil {
				slog.Warn("failed to unmarshal chunk embedding, chunk will be skipped by search",
					"chunkID", chunk.ID, logger.Err(err))
				chunk.Embedding = nil
			}
		} else {
			slog.Warn("empty embedding for chunk, chunk will be skipped by search", "chunkID", chunk.ID)
			chunk.Embedding = nil
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

func (s *SQLiteStore) ClearExerciseChunks() error {
	if _, err := s.db.Exec("DELETE FROM exercise_chunks"); err != nil {
		return fmt.Errorf("failed to delete exercise_chunks: %w", err)
	}
	_, err := s.db.Exec("DELETE FROM sqlite_sequence WHERE name='exercise_chunks'")
	if err != nil && !strings.Contains(err.Error(), "no such table") {
		slog.Warn("could not reset sequence for exercise_chunks", logger.Err(err))
	}
	return nil
}

// IngestDocsDir reads one markdown document per exercise from dir, splits
// each into paragraph chunks, generates embeddings and stores them,
// replacing any previous index contents.
func (s *SQLiteStore) IngestDocsDir(dir string, embedder func(string) ([]float32, error)) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read docs dir %s: %w", dir, err)
	}

	type rawChunk struct {
		exercise string
		content  string
	}
	var rawChunks []rawChunk

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		contentBytes, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return 0, fmt.Errorf("failed to read doc %s: %w", entry.Name(), err)
		}

		exercise := strings.TrimSuffix(entry.Name(), ".md")
		for _, para := range strings.Split(string(contentBytes), "\n\n") {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}
			rawChunks = append(rawChunks, rawChunk{exercise: exercise, content: para})
		}
	}

	if len(rawChunks) == 0 {
		slog.Warn("no chunks generated from docs dir, ensure it contains non-empty .md files", "dir", dir)
		return 0, nil
	}

	slog.Info("generated raw chunks from exercise docs, now embedding", "chunks", len(rawChunks))

	if err := s.ClearExerciseChunks(); err != nil {
		return 0, fmt.Errorf("failed to clear existing exercise chunks: %w", err)
	}

	count := 0

	ticker := time.NewTicker(40 * time.Millisecond) // delay to not hit rate limit (1500/min)
	defer ticker.Stop()

	for i, raw := range rawChunks {
		<-ticker.C

		embedding, err := embedder(raw.content)
		if err != nil {
			slog.Warn("failed to embed chunk, skipping", "chunk", i+1, "exercise", raw.exercise, logger.Err(err))
			continue
		}

		chunk := ExerciseChunk{
			Exercise:  raw.exercise,
			Content:   raw.content,
			Embedding: embedding,
		}
		if err := s.createExerciseChunk(&chunk); err != nil {
			slog.Warn("failed to store chunk, skipping", "chunk", i+1, logger.Err(err))
			continue
		}
		count++
		if count%10 == 0 || count == len(rawChunks) {
			slog.Info("ingest progress", "done", count, "total", len(rawChunks))
		}
	}
	slog.Info("ingest complete", "chunks", count)
	return count, nil
}
