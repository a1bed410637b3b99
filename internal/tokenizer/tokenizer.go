// Package tokenizer estimates token counts for bundle text.
package tokenizer

import (
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
	// DefaultModel is the model assumed when none is requested.
	DefaultModel = "gpt-3.5-turbo"
	// DefaultEncodingName is the fallback encoding for unrecognized models.
	DefaultEncodingName = "cl100k_base"
)

// NewCounter returns a Counter for the requested model together with the name
// it resolved to. An unrecognized model falls back to DefaultEncodingName, in
// which case the resolved name differs from the requested model and the caller
// should warn rather than fail.
func NewCounter(model string) (Counter, string, error) {
	requestedModel := strings.TrimSpace(model)
	if requestedModel == "" {
		requestedModel = DefaultModel
	}

	encoding, encodingError := tiktoken.EncodingForModel(requestedModel)
	if encodingError == nil && encoding != nil {
		return tiktokenCounter{encoding: encoding, name: requestedModel}, requestedModel, nil
	}

	fallbackEncoding, fallbackError := tiktoken.GetEncoding(DefaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return tiktokenCounter{encoding: fallbackEncoding, name: DefaultEncodingName}, DefaultEncodingName, nil
}

type tiktokenCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter tiktokenCounter) Name() string {
	return counter.name
}

func (counter tiktokenCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, fmt.Errorf("nil tiktoken encoder")
	}
	tokenIdentifiers := counter.encoding.Encode(input, nil, nil)
	return len(tokenIdentifiers), nil
}
