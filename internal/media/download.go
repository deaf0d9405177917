package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const downloadStem = "audio"

// DownloadAudio extracts the best audio stream with yt-dlp into dir.
func (f *implFetcher) DownloadAudio(ctx context.Context, url, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	f.logger.Info(ctx, "Downloading audio: %s", url)

	// -x: extract audio only
	// -o: relative template, resolved against dir
	args := []string{
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", f.ytdlp.AudioFormat,
		"--audio-quality", f.ytdlp.AudioQuality,
		"--no-playlist",
		"--no-warnings",
		"--quiet",
		"-o", downloadStem + ".%(ext)s",
		url,
	}

	if _, err := f.executor.ExecuteInDir(ctx, dir, f.ytdlp.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("yt-dlp download: %w", err)
	}

	path, err := findDownloaded(dir, f.ytdlp.AudioFormat)
	if err != nil {
		return "", err
	}

	f.logger.Info(ctx, "Audio downloaded: %s", path)
	return path, nil
}

// findDownloaded picks the audio file yt-dlp left in dir, preferring the
// requested format when the post-processor produced several files.
func findDownloaded(dir, format string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read download dir: %w", err)
	}

	var candidates []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, downloadStem+".") || strings.HasSuffix(name, ".part") {
			continue
		}
		if strings.EqualFold(filepath.Ext(name), "."+format) {
			return filepath.Join(dir, name), nil
		}
		candidates = append(candidates, name)
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("yt-dlp produced no audio file in %s", dir)
	}
	sort.Strings(candidates)
	return filepath.Join(dir, candidates[0]), nil
}
