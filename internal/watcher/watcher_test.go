package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/video-summarizer/internal/jobs"
	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
)

type recordingSubmitter struct {
	mu   sync.Mutex
	reqs []jobs.Request
	err  error
}

func (s *recordingSubmitter) Submit(ctx context.Context, req jobs.Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.reqs = append(s.reqs, req)
	return "abcd1234", nil
}

func (s *recordingSubmitter) requests() []jobs.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]jobs.Request(nil), s.reqs...)
}

func newTestWatcher(t *testing.T, sub Submitter) (*implWatcher, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := New(dir, sub, Options{ContentType: "summary", SettleDelay: 10 * time.Millisecond}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })
	return w.(*implWatcher), dir
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		path string
		want fileKind
	}{
		{"lecture.txt", kindTranscript},
		{"LECTURE.TXT", kindTranscript},
		{"talk.mp4", kindMedia},
		{"podcast.mp3", kindMedia},
		{"slides.pdf", kindIgnored},
		{".hidden.mp4", kindIgnored},
		{"notes.docx", kindIgnored},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, kindOf(tt.path), tt.path)
	}
}

func TestIngestTranscript(t *testing.T) {
	sub := &recordingSubmitter{}
	w, dir := newTestWatcher(t, sub)

	path := filepath.Join(dir, "Graph Theory.txt")
	require.NoError(t, os.WriteFile(path, []byte("nodes and edges"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Graph Theory.pdf"), []byte("%PDF-1.4"), 0644))

	require.NoError(t, w.ingest(context.Background(), path))

	reqs := sub.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "nodes and edges", reqs[0].Transcript)
	assert.Equal(t, "Graph Theory", reqs[0].TranscriptTitle)
	assert.Equal(t, filepath.Join(dir, "Graph Theory.pdf"), reqs[0].PDFPath)
	assert.Equal(t, "summary", reqs[0].ContentType)
	assert.Empty(t, reqs[0].LocalFile)
}

func TestIngestMedia(t *testing.T) {
	sub := &recordingSubmitter{}
	w, dir := newTestWatcher(t, sub)

	path := filepath.Join(dir, "talk.mp4")
	require.NoError(t, os.WriteFile(path, []byte("video"), 0644))

	require.NoError(t, w.ingest(context.Background(), path))

	reqs := sub.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, path, reqs[0].LocalFile)
	assert.Empty(t, reqs[0].PDFPath)
	assert.Empty(t, reqs[0].Transcript)
}

func TestIngestSubmitError(t *testing.T) {
	sub := &recordingSubmitter{err: jobs.ErrAtCapacity}
	w, dir := newTestWatcher(t, sub)

	path := filepath.Join(dir, "talk.mp3")
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0644))

	err := w.ingest(context.Background(), path)
	assert.True(t, errors.Is(err, jobs.ErrAtCapacity))
}

func TestStartPicksUpNewFiles(t *testing.T) {
	sub := &recordingSubmitter{}
	w, dir := newTestWatcher(t, sub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.docx"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lesson.txt"), []byte("hello"), 0644))

	require.Eventually(t, func() bool { return len(sub.requests()) == 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, "lesson", sub.requests()[0].TranscriptTitle)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
