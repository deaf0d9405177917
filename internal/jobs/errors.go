package jobs

import (
	"errors"
	"strings"
)

var (
	ErrNotFound     = errors.New("job not found")
	ErrAtCapacity   = errors.New("job table is full of running jobs")
	ErrShuttingDown = errors.New("job manager is shutting down")
	errDuplicateID  = errors.New("duplicate job id")
)

// ValidationError rejects a submission before any job is created.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

const gpuMemoryMessage = "GPU memory error. Try restarting the application or using a smaller model."

var gpuSignals = []string{"CUDA error", "out of memory", "status code: 500"}

// errorMessage converts a pipeline failure into the job's error text.
func errorMessage(err error) string {
	msg := err.Error()
	for _, s := range gpuSignals {
		if strings.Contains(msg, s) {
			return gpuMemoryMessage
		}
	}
	return msg
}
