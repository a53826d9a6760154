package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultChatModelName      = "gemini-2.5-flash"
	defaultEmbeddingModelName = "text-embedding-004"

	// Phrasing variability is a tunable, not a correctness property.
	answerTemperature = 0.75
	answerTopP        = 0.9

	answerSystemInstruction = "YOUR ROLE: You are the Form Guide exercise assistant, a positive and encouraging expert " +
		"who explains bodyweight exercises by synthesizing information in your own words. You are an information " +
		"source only: you never build training programs and never recommend exercises.\n\n" +
		"YOUR TASK: Analyze the user's input and respond as follows:\n\n" +
		"1. DETERMINE INTENT. Is the user making small talk, asking about a specific exercise, or making a vague request?\n" +
		"   - Small talk: ignore the reference context entirely. Reply briefly, kindly and helpfully, and gently invite " +
		"the user to ask about a specific exercise. Be natural and vary your wording; for example: " +
		"\"Hello! Which exercise can I tell you about?\", \"I'm ready! Which movement are you curious about?\" " +
		"Produce your own phrasing along these lines. Then stop.\n" +
		"   - A question or request: continue.\n\n" +
		"2. ANALYZE THE REFERENCE CONTEXT. The reference context below is your ONLY source of information. " +
		"Identify the parts directly relevant to the question and discard the rest.\n\n" +
		"3. WRITE AN ORIGINAL, FOCUSED ANSWER.\n" +
		"   - If relevant reference material exists: rewrite it from scratch in your own words and sentence structures, " +
		"clearly different from the reference phrasing. Answer only what was asked, nothing extra. Close with one short, " +
		"positive, encouraging sentence about the exercise.\n" +
		"   - If no relevant reference material exists, or the request is vague: NEVER fall back on general knowledge. " +
		"For a vague request such as \"leg exercises\", explain that the library holds specific movements and offer " +
		"named examples, e.g. \"I can tell you about Squat or Lunge. Which one would you like to learn?\" " +
		"For a specific exercise missing from the reference material, say you could not find details about it in the " +
		"available information and suggest asking about basic movements like Squat, Plank or Lunge instead.\n\n" +
		"4. FORMAT AND TONE. Use simple Markdown (bold, short lists) for readability. Always stay positive, " +
		"encouraging and clear. Give no medical advice and recommend no exercises; only explain what was asked."

	reformulateInstruction = "Based on the conversation above, produce a single self-contained query sentence " +
		"suitable for searching the exercise reference index to answer only the last question. " +
		"Resolve any pronouns or references to earlier turns. Return the query and nothing else."
)

// HistoryTurn is one prior exchange as plain text, with any display markup
// already stripped from the answer.
type HistoryTurn struct {
	Question string
	Answer   string
}

type LLMService struct {
	client *genai.Client
}

func NewLLMService(ctx context.Context, apiKey string) (*LLMService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &LLMService{client: client}, nil
}

func (s *LLMService) Close() {
	if s == nil || s.client == nil {
		return
	}
	if err := s.client.Close(); err != nil {
		slog.Warn("error closing GenAI client", "err", err)
	}
}

func (s *LLMService) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	em := s.client.EmbeddingModel(defaultEmbeddingModelName)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embedding request failed: %w", err)
	}

	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("no embedding data received from gemini")
	}
	return res.Embedding.Values, nil
}

// Reformulate collapses a context-dependent question into one standalone
// search query. With no prior history there is nothing to resolve and the
// question is returned as-is without a model call.
func (s *LLMService) Reformulate(ctx context.Context, history []HistoryTurn, question string) (string, error) {
	if len(history) == 0 {
		return question, nil
	}

	model := s.client.GenerativeModel(defaultChatModelName)

	chatSession := model.StartChat()
	chatSession.History = historyToContents(history)
	chatSession.History = append(chatSession.History, &genai.Content{
		Role:  "user",
		Parts: []genai.Part{genai.Text(question)},
	})

	resp, err := chatSession.SendMessage(ctx, genai.Text(reformulateInstruction))
	if err != nil {
		return "", fmt.Errorf("gemini query reformulation failed: %w", err)
	}

	query := collectText(resp)
	if query == "" {
		// An empty rewrite is not fatal; the raw question still searches.
		slog.Warn("reformulation returned no text, falling back to the raw question")
		return question, nil
	}
	return strings.TrimSpace(query), nil
}

// GenerateAnswer produces the raw markdown answer for a question, grounded
// in the retrieved reference chunks and aware of the prior conversation.
func (s *LLMService) GenerateAnswer(ctx context.Context, question string, docs []ScoredChunk, history []HistoryTurn) (string, error) {
	model := s.client.GenerativeModel(defaultChatModelName)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(answerSystemInstruction)},
	}

	temp := float32(answerTemperature)
	topP := float32(answerTopP)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature: &temp,
		TopP:        &topP,
	}

	chatSession := model.StartChat()
	chatSession.History = historyToContents(history)

	resp, err := chatSession.SendMessage(ctx, genai.Text(buildUserContent(question, docs)))
	if err != nil {
		return "", fmt.Errorf("gemini answer generation failed: %w", err)
	}

	answer := collectText(resp)
	if answer == "" {
		slog.Warn("gemini response was empty or had no text parts")
		return "I'm sorry, I couldn't generate a response at this time. Please try again.", nil
	}
	return answer, nil
}

func buildUserContent(question string, docs []ScoredChunk) string {
	var contextBuilder strings.Builder
	for _, doc := range docs {
		contextBuilder.WriteString(doc.Chunk.Content)
		contextBuilder.WriteString("\n\n")
	}
	referenceContext := strings.TrimSpace(contextBuilder.String())

	if referenceContext == "" {
		return fmt.Sprintf("Reference context (your ONLY source of information): none found for this input.\n\nUser input: %s", question)
	}
	return fmt.Sprintf("Reference context (your ONLY source of information):\n--- CONTEXT START ---\n%s\n--- CONTEXT END ---\n\nUser input: %s", referenceContext, question)
}

func historyToContents(history []HistoryTurn) []*genai.Content {
	var contents []*genai.Content
	for _, turn := range history {
		contents = append(contents,
			&genai.Content{Role: "user", Parts: []genai.Part{genai.Text(turn.Question)}},
			&genai.Content{Role: "model", Parts: []genai.Part{genai.Text(turn.Answer)}},
		)
	}
	return contents
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		} else {
			slog.Warn("gemini response part was not text", "type", fmt.Sprintf("%T", part))
		}
	}
	return b.String()
}
