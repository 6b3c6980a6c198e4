package search

import "strings"

// tokenize splits a query into lowercase whitespace-delimited tokens.
func tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// countTokenHits counts how many of the tokens appear as substrings of the
// document text, case-insensitively. Repeated tokens count every occurrence
// in the token list, matching how raw query terms are weighted.
func countTokenHits(document string, tokens []string) int {
	doc := strings.ToLower(document)
	hits := 0
	for _, token := range tokens {
		if strings.Contains(doc, token) {
			hits++
		}
	}
	return hits
}
