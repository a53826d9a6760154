package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"formrehberim.com/form-guide/internal/i18n"
	"formrehberim.com/form-guide/internal/logger"
	"formrehberim.com/form-guide/internal/markup"
	"formrehberim.com/form-guide/internal/store"
)

// ConversationStore is the per-session state the orchestrator needs.
type ConversationStore interface {
	GetOrCreateSession(sessionID, defaultLang string) (*store.Session, error)
	SetSessionLanguage(sessionID, lang string) error
	AppendTurn(turn *store.Turn) error
	ReplaceLastTurn(turn *store.Turn) error
	TurnsBySession(sessionID string) ([]store.Turn, error)
	ClearTurns(sessionID string) error
}

// ChatService orchestrates one conversational turn: reformulation,
// retrieval, generation and the conversation-log update.
type ChatService struct {
	convStore   ConversationStore
	pipeline    *Pipeline
	llmTimeout  time.Duration
	defaultLang string
}

func NewChatService(cs ConversationStore, pipeline *Pipeline, llmTimeout time.Duration, defaultLang string) *ChatService {
	return &ChatService{
		convStore:   cs,
		pipeline:    pipeline,
		llmTimeout:  llmTimeout,
		defaultLang: defaultLang,
	}
}

func (s *ChatService) GetOrCreateSession(sessionID string) (*store.Session, error) {
	return s.convStore.GetOrCreateSession(sessionID, s.defaultLang)
}

// SetLanguage switches the session language. An unrecognized code is a
// no-op, not an error.
func (s *ChatService) SetLanguage(sessionID, code string) error {
	if !i18n.Known(code) {
		return nil
	}
	return s.convStore.SetSessionLanguage(sessionID, code)
}

func (s *ChatService) History(sessionID string) ([]store.Turn, error) {
	return s.convStore.TurnsBySession(sessionID)
}

func (s *ChatService) ClearHistory(sessionID string) error {
	return s.convStore.ClearTurns(sessionID)
}

// HandleTurn runs one turn for a session and returns the sanitized display
// answer. An empty question is a no-op and leaves the history unchanged.
// Whatever happens in the pipeline, a non-empty question always ends up as
// exactly one completed turn in the log.
func (s *ChatService) HandleTurn(ctx context.Context, sessionID string, lang i18n.Pack, rawQuestion string) (string, error) {
	question := strings.TrimSpace(rawQuestion)
	if question == "" {
		return "", nil
	}

	if !s.pipeline.Ready() {
		answerHTML := markup.ToDisplayHTML(lang.NotReadyMessage)
		turn := &store.Turn{SessionID: sessionID, Question: question, Answer: answerHTML, Status: store.TurnAnswered}
		if err := s.convStore.AppendTurn(turn); err != nil {
			return "", fmt.Errorf("failed to record not-ready turn: %w", err)
		}
		return answerHTML, nil
	}

	// Provisional append so a mid-pipeline failure still leaves the
	// question visible with an error answer instead of vanishing.
	provisional := &store.Turn{SessionID: sessionID, Question: question, Status: store.TurnPending}
	if err := s.convStore.AppendTurn(provisional); err != nil {
		return "", fmt.Errorf("failed to append provisional turn: %w", err)
	}

	answerHTML, status := s.runPipeline(ctx, sessionID, lang, question)

	completed := &store.Turn{SessionID: sessionID, Question: question, Answer: answerHTML, Status: status}
	if err := s.convStore.ReplaceLastTurn(completed); err != nil {
		return "", fmt.Errorf("failed to complete turn: %w", err)
	}
	return answerHTML, nil
}

// runPipeline performs the single-attempt reformulate→retrieve→generate
// call and maps its outcome to a display answer plus turn status.
func (s *ChatService) runPipeline(ctx context.Context, sessionID string, lang i18n.Pack, question string) (string, store.TurnStatus) {
	history, err := s.projectHistory(sessionID)
	if err != nil {
		slog.Warn("failed to project history, proceeding without it", "session", sessionID, logger.Err(err))
		history = nil
	}

	if s.llmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.llmTimeout)
		defer cancel()
	}

	start := time.Now()
	rawAnswer, err := s.invokePipeline(ctx, question, history)
	elapsed := time.Since(start)

	if err != nil {
		slog.Error("turn pipeline failed", "session", sessionID, "elapsed", elapsed, logger.Err(err))
		return markup.ToDisplayHTML(fmt.Sprintf(lang.ErrorMessage, err)), store.TurnFailed
	}

	slog.Info("turn pipeline completed", "session", sessionID, "elapsed", elapsed)
	return markup.ToDisplayHTML(rawAnswer), store.TurnAnswered
}

func (s *ChatService) invokePipeline(ctx context.Context, question string, history []HistoryTurn) (string, error) {
	query, err := s.pipeline.Reformulator.Reformulate(ctx, history, question)
	if err != nil {
		return "", fmt.Errorf("reformulating query: %w", err)
	}

	docs, err := s.pipeline.Searcher.Search(ctx, query, NumRelevantChunks)
	if err != nil {
		return "", fmt.Errorf("searching exercise index: %w", err)
	}

	answer, err := s.pipeline.Generator.GenerateAnswer(ctx, question, docs, history)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}
	return answer, nil
}

// projectHistory builds the model-facing view of the conversation: every
// completed turn except the in-flight provisional one, with display markup
// stripped so the model only ever sees plain text.
func (s *ChatService) projectHistory(sessionID string) ([]HistoryTurn, error) {
	turns, err := s.convStore.TurnsBySession(sessionID)
	if err != nil {
		return nil, err
	}

	var history []HistoryTurn
	for _, turn := range turns {
		if !turn.Completed() || turn.Answer == "" {
			continue
		}
		history = append(history, HistoryTurn{
			Question: turn.Question,
			Answer:   markup.StripTags(turn.Answer),
		})
	}
	return history, nil
}
