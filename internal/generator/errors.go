package generator

import (
	"errors"
	"strings"
)

// ErrMemoryExhausted marks provider failures caused by the model running
// out of accelerator or system memory.
var ErrMemoryExhausted = errors.New("model memory exhausted")

const (
	msgMemoryGiveUp   = "Unable to generate content due to insufficient GPU memory. Consider using a smaller model or restarting the application."
	msgEmpty          = "Unable to generate content for this section."
	msgReducedEmpty   = "Content generated with reduced parameters due to memory constraints."
	msgGenericPrefix  = "Error generating content: "
	retryPromptRunes  = 1000
	retryMaxTokensCap = 400
)

var memorySignals = []string{"status code: 500", "system memory", "out of memory"}

// IsMemoryExhausted reports whether err looks like a memory-exhaustion
// failure of the model server.
func IsMemoryExhausted(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrMemoryExhausted) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range memorySignals {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
