package media

import (
	"context"

	"github.com/nguyentantai21042004/video-summarizer/pkg/models"
)

// Fetcher resolves sources to metadata and downloads their audio.
type Fetcher interface {
	// Info resolves a remote URL to its metadata.
	Info(ctx context.Context, url string) (models.VideoInfo, error)
	// LocalInfo describes a media file already on disk.
	LocalInfo(ctx context.Context, path string) (models.VideoInfo, error)
	// DownloadAudio fetches the best audio track of url into dir and
	// returns the downloaded file path.
	DownloadAudio(ctx context.Context, url, dir string) (string, error)
}
