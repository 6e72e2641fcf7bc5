package generation

import (
	"fmt"
	"strings"
)

// maxContextPassages caps how many retrieved passages go into the prompt.
// More passages dilute the instruction and blow up token usage.
const maxContextPassages = 3

const contextualPromptTemplate = `Based on the following context, please answer the question. If the context doesn't contain enough information to answer the question, please say so and provide what information you can.

Context:
%s

Question: %s

Answer:`

const generalPromptTemplate = `I don't have specific context to answer this question, but I'll provide what general information I can.

Question: %s

Answer:`

// buildPrompt assembles the model prompt from the question and retrieved
// context. Only the first three context entries are used, joined with a blank
// line. With no context the prompt tells the model to answer from general
// knowledge.
func buildPrompt(query string, context []string) string {
	if len(context) == 0 {
		return fmt.Sprintf(generalPromptTemplate, query)
	}

	capped := context
	if len(capped) > maxContextPassages {
		capped = capped[:maxContextPassages]
	}
	return fmt.Sprintf(contextualPromptTemplate, strings.Join(capped, "\n\n"), query)
}
