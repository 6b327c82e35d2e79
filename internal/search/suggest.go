package search

import (
	"context"
	"strings"
)

const (
	// minSuggestionQueryLen avoids noisy single-character matches.
	minSuggestionQueryLen = 2
	maxSuggestions        = 8
	// suggestionCandidates is how many names are fetched before deduplication.
	suggestionCandidates = 16
)

// SuggestionSource is the one lightweight name source autocomplete draws from.
type SuggestionSource interface {
	SuggestNames(ctx context.Context, query string, limit int) ([]string, error)
}

// SuggestionGenerator produces query completions independently of the ranked
// result set. It never propagates source errors.
type SuggestionGenerator struct {
	source SuggestionSource
	log    Logger
}

func NewSuggestionGenerator(source SuggestionSource, log Logger) *SuggestionGenerator {
	return &SuggestionGenerator{source: source, log: log}
}

// Suggest returns up to maxSuggestions distinct entity names containing the
// query. Queries shorter than two characters yield nothing.
func (g *SuggestionGenerator) Suggest(ctx context.Context, query string) []string {
	trimmed := strings.TrimSpace(query)
	if len([]rune(trimmed)) < minSuggestionQueryLen {
		return []string{}
	}

	names, err := g.source.SuggestNames(ctx, trimmed, suggestionCandidates)
	if err != nil {
		g.log.Errorf("search: suggestion source failed: %v", err)
		return []string{}
	}

	seen := make(map[string]struct{}, len(names))
	suggestions := make([]string, 0, maxSuggestions)
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		suggestions = append(suggestions, name)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}
