package media

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/video-summarizer/pkg/models"
)

const unknown = "Unknown"

// ytdlpInfo is the subset of yt-dlp's --dump-single-json output we read.
type ytdlpInfo struct {
	Title     string   `json:"title"`
	Duration  *float64 `json:"duration"`
	Uploader  string   `json:"uploader"`
	Channel   string   `json:"channel"`
	Thumbnail string   `json:"thumbnail"`
	ViewCount *int64   `json:"view_count"`
	URL       string   `json:"webpage_url"`
}

// Info runs yt-dlp in metadata-only mode.
func (f *implFetcher) Info(ctx context.Context, url string) (models.VideoInfo, error) {
	f.logger.Info(ctx, "Fetching video info: %s", url)

	args := []string{
		"--dump-single-json",
		"--skip-download",
		"--no-playlist",
		"--no-warnings",
		url,
	}

	out, err := f.executor.Execute(ctx, f.ytdlp.BinaryPath, args...)
	if err != nil {
		return models.VideoInfo{}, fmt.Errorf("yt-dlp info: %w", err)
	}

	var raw ytdlpInfo
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return models.VideoInfo{}, fmt.Errorf("decode yt-dlp info: %w", err)
	}

	info := models.VideoInfo{
		Title:     raw.Title,
		Uploader:  raw.Uploader,
		Thumbnail: raw.Thumbnail,
		URL:       url,
	}
	if info.Title == "" {
		info.Title = unknown
	}
	if info.Uploader == "" {
		info.Uploader = raw.Channel
	}
	if info.Uploader == "" {
		info.Uploader = unknown
	}
	if raw.Duration != nil {
		info.Duration = *raw.Duration
	}
	if raw.ViewCount != nil {
		info.ViewCount = *raw.ViewCount
	}

	f.logger.Debug(ctx, "Video info: title=%q duration=%s", info.Title, info.DurationLabel())
	return info, nil
}

// LocalInfo probes the duration with ffprobe and uses the file stem as title.
// A failed probe is not fatal; the duration is left at zero.
func (f *implFetcher) LocalInfo(ctx context.Context, path string) (models.VideoInfo, error) {
	base := filepath.Base(path)
	info := models.VideoInfo{
		Title:    strings.TrimSuffix(base, filepath.Ext(base)),
		Uploader: "Local file",
	}

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
	out, err := f.executor.Execute(ctx, f.ffprobe, args...)
	if err != nil {
		f.logger.Warn(ctx, "ffprobe failed for %s: %v", path, err)
		return info, nil
	}

	if d, err := strconv.ParseFloat(strings.TrimSpace(out), 64); err == nil {
		info.Duration = d
	}
	return info, nil
}
