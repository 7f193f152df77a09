// Package tokenizer estimates how many model tokens a rendered tree occupies.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config captures tokenizer selection parameters provided by the CLI.
type Config struct {
	Model string
}

const (
	defaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"
)

var errNilCounter = errors.New("nil tokenizer counter")

// NewCounter returns a Counter for the requested model together with the name it resolved to.
// Models tiktoken does not know are counted with the cl100k_base encoding.
func NewCounter(cfg Config) (Counter, string, error) {
	model := ResolveModel(cfg.Model)
	encoding, err := tiktoken.EncodingForModel(model)
	if err == nil && encoding != nil {
		return openAICounter{encoding: encoding, name: model}, model, nil
	}
	fallback, fallbackErr := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackErr != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackErr)
	}
	return openAICounter{encoding: fallback, name: defaultEncodingName}, defaultEncodingName, nil
}

// ResolveModel normalizes a model name and substitutes the default when it is blank.
func ResolveModel(model string) string {
	trimmed := strings.ToLower(strings.TrimSpace(model))
	if trimmed == "" {
		return defaultModel
	}
	return trimmed
}

// Count estimates the tokens of a rendering.
func Count(counter Counter, rendering string) (int, error) {
	if counter == nil {
		return 0, errNilCounter
	}
	return counter.CountString(rendering)
}

type openAICounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter openAICounter) Name() string {
	return counter.name
}

func (counter openAICounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	tokenIDs := counter.encoding.Encode(input, nil, nil)
	return len(tokenIDs), nil
}
