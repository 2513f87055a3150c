package corpus

import (
	"sort"
	"strings"
)

// Search scoring weights and limits.
const (
	titleWeight       = 5
	contentWeight     = 1
	maxContentMatches = 10
	defaultLimit      = 10
	maxLimit          = 50
	snippetRadius     = 80
)

// SearchResult is one ranked match from the corpus.
type SearchResult struct {
	ID      string
	Title   string
	URL     string
	Snippet string
	Score   int
}

// Search ranks docs against query. product, when non-empty, restricts the
// scope. Results are ordered by score, then id, so ranking is
// deterministic for a given corpus.
func Search(docs []Document, query string, product string, limit int) []SearchResult {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	var results []SearchResult
	for _, doc := range docs {
		if product != "" && doc.Product != product {
			continue
		}
		score, firstIdx := scoreDocument(doc, terms)
		if score == 0 {
			continue
		}
		results = append(results, SearchResult{
			ID:      doc.ID,
			Title:   doc.Title,
			URL:     doc.URL,
			Snippet: snippet(doc.Content, firstIdx),
			Score:   score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// scoreDocument returns the match score and the byte index of the first
// content match (-1 when the match is title-only).
func scoreDocument(doc Document, terms []string) (int, int) {
	title := strings.ToLower(doc.Title)
	content := strings.ToLower(doc.Content)

	score := 0
	firstIdx := -1
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += titleWeight
		}
		count := strings.Count(content, term)
		if count > maxContentMatches {
			count = maxContentMatches
		}
		score += count * contentWeight
		if count > 0 {
			idx := strings.Index(content, term)
			if firstIdx == -1 || idx < firstIdx {
				firstIdx = idx
			}
		}
	}
	return score, firstIdx
}

// snippet extracts a window of content around idx.
func snippet(content string, idx int) string {
	if idx < 0 {
		idx = 0
	}
	start := idx - snippetRadius
	if start < 0 {
		start = 0
	}
	end := idx + snippetRadius
	if end > len(content) {
		end = len(content)
	}
	out := strings.TrimSpace(content[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(content) {
		out += "..."
	}
	return out
}
