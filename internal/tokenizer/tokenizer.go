// Package tokenizer estimates token counts for rendered output so users know
// the cost of pasting a structure into an LLM conversation.
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

const (
	// DefaultModel is used when the caller does not select a tokenizer model.
	DefaultModel = "gpt-4o"
	// defaultEncodingName backs models tiktoken does not know directly.
	defaultEncodingName = "cl100k_base"

	// errorFallbackEncodingFormat reports a failure to build the fallback encoding.
	errorFallbackEncodingFormat = "initialize fallback tokenizer: %w"
)

// openAICounter counts tokens with a tiktoken encoding.
type openAICounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// Name returns the resolved model or encoding name.
func (counter openAICounter) Name() string {
	return counter.name
}

// CountString returns the number of tokens in input.
func (counter openAICounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	tokenIdentifiers := counter.encoding.Encode(input, nil, nil)
	return len(tokenIdentifiers), nil
}

// NewCounter returns a Counter for the requested model alongside the
// resolved model name. Unknown models fall back to the default encoding.
func NewCounter(model string) (Counter, string, error) {
	resolvedModel := strings.ToLower(strings.TrimSpace(model))
	if resolvedModel == "" {
		resolvedModel = DefaultModel
	}

	encoding, encodingError := tiktoken.EncodingForModel(resolvedModel)
	if encodingError == nil && encoding != nil {
		return openAICounter{encoding: encoding, name: resolvedModel}, resolvedModel, nil
	}

	fallbackEncoding, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf(errorFallbackEncodingFormat, fallbackError)
	}
	return openAICounter{encoding: fallbackEncoding, name: defaultEncodingName}, defaultEncodingName, nil
}
