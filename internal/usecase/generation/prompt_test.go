package generation

import (
	"strings"
	"testing"
)

func TestBuildPrompt_UsesFirstThreePassages(t *testing.T) {
	prompt := buildPrompt("question?", []string{"one", "two", "three", "four", "five"})

	if !strings.Contains(prompt, "one\n\ntwo\n\nthree") {
		t.Errorf("context not joined with blank lines:\n%s", prompt)
	}
	if strings.Contains(prompt, "four") || strings.Contains(prompt, "five") {
		t.Errorf("prompt includes passages beyond the first three:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Question: question?") {
		t.Errorf("question missing:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Based on the following context") {
		t.Errorf("contextual instruction missing:\n%s", prompt)
	}
}

func TestBuildPrompt_NoContext(t *testing.T) {
	prompt := buildPrompt("question?", nil)

	if !strings.Contains(prompt, "I don't have specific context") {
		t.Errorf("general-knowledge instruction missing:\n%s", prompt)
	}
	if strings.Contains(prompt, "Context:") {
		t.Errorf("empty context should not render a context block:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Question: question?") {
		t.Errorf("question missing:\n%s", prompt)
	}
}
