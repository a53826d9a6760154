package core

import "context"

// QueryReformulator rewrites a context-dependent utterance into one
// standalone search query.
type QueryReformulator interface {
	Reformulate(ctx context.Context, history []HistoryTurn, question string) (string, error)
}

// AnswerGenerator produces the raw markdown answer for one turn.
type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, question string, docs []ScoredChunk, history []HistoryTurn) (string, error)
}

// DocumentSearcher is the consumed interface of the reference corpus index.
type DocumentSearcher interface {
	Search(ctx context.Context, query string, k int) ([]ScoredChunk, error)
}

// Pipeline bundles the external collaborators one turn needs. It is built
// once at startup and never mutated afterwards; a nil pipeline (missing
// credential or index artifact) means every turn short-circuits to the
// not-ready message.
type Pipeline struct {
	Reformulator QueryReformulator
	Generator    AnswerGenerator
	Searcher     DocumentSearcher
}

func NewPipeline(llm *LLMService, retriever *Retriever) *Pipeline {
	return &Pipeline{
		Reformulator: llm,
		Generator:    llm,
		Searcher:     retriever,
	}
}

func (p *Pipeline) Ready() bool {
	return p != nil && p.Reformulator != nil && p.Generator != nil && p.Searcher != nil
}
