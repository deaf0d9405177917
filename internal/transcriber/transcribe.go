package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/video-summarizer/pkg/models"
)

// whisperOutput is the document written by whisper.cpp with -oj.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// Transcribe normalizes mediaPath and runs whisper.cpp over it.
func (t *implTranscriber) Transcribe(ctx context.Context, mediaPath, modelSize string) (models.Transcript, error) {
	model, err := t.modelPath(modelSize)
	if err != nil {
		return models.Transcript{}, err
	}

	audioPath, err := t.extractAudio(ctx, mediaPath)
	if err != nil {
		return models.Transcript{}, err
	}
	defer t.cleanupTempFile(ctx, audioPath)

	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	jsonPath := outputPrefix + ".json"
	defer t.cleanupTempFile(ctx, jsonPath)

	t.logger.Info(ctx, "Starting transcription with %d threads, model %s", t.whisper.Threads, filepath.Base(model))

	// -oj: JSON output with per-segment offsets in milliseconds
	// -l auto: detect the spoken language
	args := []string{
		"-m", model,
		"-f", audioPath,
		"-oj",
		"-l", t.whisper.Language,
		"-t", strconv.Itoa(t.whisper.Threads),
		"-bo", strconv.Itoa(t.whisper.BestOf),
		"--output-file", outputPrefix,
	}
	if t.whisper.Prompt != "" {
		args = append(args, "--prompt", t.whisper.Prompt)
	}

	if _, err := t.executor.Execute(ctx, t.whisper.BinaryPath, args...); err != nil {
		return models.Transcript{}, fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return models.Transcript{}, fmt.Errorf("read whisper output: %w", err)
	}

	transcript, err := parseWhisperJSON(data)
	if err != nil {
		return models.Transcript{}, err
	}
	if transcript.Language == "" && t.whisper.Language != "auto" {
		transcript.Language = t.whisper.Language
	}

	t.logger.Info(ctx, "Transcription completed: %d segments, language %s", len(transcript.Segments), transcript.Language)
	return transcript, nil
}

func parseWhisperJSON(data []byte) (models.Transcript, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return models.Transcript{}, fmt.Errorf("decode whisper output: %w", err)
	}

	var sb strings.Builder
	segments := make([]models.Segment, 0, len(out.Transcription))
	for _, seg := range out.Transcription {
		sb.WriteString(seg.Text)
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		segments = append(segments, models.Segment{
			Start: float64(seg.Offsets.From) / 1000,
			End:   float64(seg.Offsets.To) / 1000,
			Text:  text,
		})
	}

	return models.Transcript{
		Text:     strings.TrimSpace(sb.String()),
		Language: out.Result.Language,
		Segments: segments,
	}, nil
}
