package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/video-summarizer/pkg/models"
)

// Transcriber converts an audio or video file into a timed transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaPath, modelSize string) (models.Transcript, error)
}
