package tokenizer

import (
	"errors"
	"testing"
)

type testCounter struct{}

func (testCounter) Name() string { return "stub" }

func (testCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

type failingCounter struct{}

func (failingCounter) Name() string { return "failing" }

func (failingCounter) CountString(string) (int, error) { return 0, errors.New("boom") }

func TestCountRendering(t *testing.T) {
	rendering := "proj\n    └── a.txt\n"
	tokens, err := Count(testCounter{}, rendering)
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if tokens != len([]rune(rendering)) {
		t.Fatalf("expected %d tokens, got %d", len([]rune(rendering)), tokens)
	}
}

func TestCountNilCounter(t *testing.T) {
	if _, err := Count(nil, "text"); !errors.Is(err, errNilCounter) {
		t.Fatalf("expected errNilCounter, got %v", err)
	}
}

func TestCountPropagatesCounterError(t *testing.T) {
	if _, err := Count(failingCounter{}, "text"); err == nil {
		t.Fatalf("expected counter error")
	}
}

func TestResolveModel(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "", expected: defaultModel},
		{input: "   ", expected: defaultModel},
		{input: " GPT-4 ", expected: "gpt-4"},
		{input: "gpt-4o-mini", expected: "gpt-4o-mini"},
	}
	for _, testCase := range testCases {
		if actual := ResolveModel(testCase.input); actual != testCase.expected {
			t.Fatalf("ResolveModel(%q): expected %q, got %q", testCase.input, testCase.expected, actual)
		}
	}
}
