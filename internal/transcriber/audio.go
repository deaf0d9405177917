package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// extractAudio converts any input to mono 16-bit PCM WAV at the configured
// sample rate, the only input format whisper.cpp accepts.
func (t *implTranscriber) extractAudio(ctx context.Context, mediaPath string) (string, error) {
	audioPath := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + "_temp.wav"

	t.logger.Info(ctx, "Normalizing audio: %s", mediaPath)

	// -vn: drop video
	// -ac 1: mono
	// -threads 0: all cores
	args := []string{
		"-i", mediaPath,
		"-vn",
		"-ar", strconv.Itoa(t.ffmpeg.SampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
	}
	if t.ffmpeg.AudioFilter != "" {
		args = append(args, "-af", t.ffmpeg.AudioFilter)
	}
	args = append(args, "-threads", "0", "-y", audioPath)

	if _, err := t.executor.Execute(ctx, t.ffmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	t.logger.Debug(ctx, "Audio normalized: %s", audioPath)
	return audioPath, nil
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (t *implTranscriber) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		t.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	}
}
