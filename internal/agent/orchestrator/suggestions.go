package orchestrator

import "strings"

const maxSuggestions = 3

// deriveSuggestions produces up to three follow-up prompts keyed off
// the topic of the exchange. Purely heuristic.
func deriveSuggestions(userMessage, response string) []string {
	var suggestions []string

	userLower := strings.ToLower(userMessage)
	responseLower := strings.ToLower(response)

	if strings.Contains(userLower, "search") || strings.Contains(userLower, "find") {
		suggestions = append(suggestions,
			"Show me all products",
			"What's in the Electronics category?",
			"Compare two products",
		)
	}

	if strings.Contains(userLower, "cart") || strings.Contains(userLower, "add") {
		suggestions = append(suggestions,
			"Show my cart summary",
			"What's my cart total?",
			"Continue shopping",
		)
	}

	if strings.Contains(responseLower, "product") && strings.Contains(responseLower, "id") {
		suggestions = append(suggestions,
			"Add this to my cart",
			"Tell me more about this product",
			"Show me similar products",
		)
	}

	if len(suggestions) == 0 {
		suggestions = []string{
			"Search for products",
			"Browse categories",
			"Check my cart",
		}
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
