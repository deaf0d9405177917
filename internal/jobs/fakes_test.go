package jobs

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/video-summarizer/internal/logger"
	"github.com/nguyentantai21042004/video-summarizer/internal/results"
	"github.com/nguyentantai21042004/video-summarizer/pkg/models"
)

type fakeFetcher struct {
	info    models.VideoInfo
	infoErr error
	block   chan struct{}
}

func (f *fakeFetcher) Info(ctx context.Context, url string) (models.VideoInfo, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return models.VideoInfo{}, ctx.Err()
		}
	}
	return f.info, f.infoErr
}

func (f *fakeFetcher) LocalInfo(ctx context.Context, path string) (models.VideoInfo, error) {
	return models.VideoInfo{Title: filepath.Base(path), Uploader: "Local file"}, nil
}

func (f *fakeFetcher) DownloadAudio(ctx context.Context, url, dir string) (string, error) {
	p := filepath.Join(dir, "audio.mp3")
	return p, os.WriteFile(p, []byte("audio"), 0644)
}

// overlapCounter records the peak number of calls in flight at once.
type overlapCounter struct {
	mu      sync.Mutex
	current int
	peak    int
	calls   int
	hold    time.Duration
}

func (c *overlapCounter) track() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.current++
	c.calls++
	c.peak = max(c.peak, c.current)
	c.mu.Unlock()

	time.Sleep(c.hold)

	c.mu.Lock()
	c.current--
	c.mu.Unlock()
}

func (c *overlapCounter) stats() (peak, calls int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peak, c.calls
}

type fakeTranscriber struct {
	transcript models.Transcript
	err        error
	inFlight   *overlapCounter
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, mediaPath, modelSize string) (models.Transcript, error) {
	f.inFlight.track()
	return f.transcript, f.err
}

type fakeGenerator struct {
	mu       sync.Mutex
	sections []string
	titles   int
	inFlight *overlapCounter
}

func (g *fakeGenerator) Summary(ctx context.Context, transcript, title string) string {
	g.inFlight.track()
	return "summary of " + title
}

func (g *fakeGenerator) Section(ctx context.Context, section, transcript, title string) string {
	g.inFlight.track()
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sections = append(g.sections, section)
	return "content for " + section
}

func (g *fakeGenerator) Title(ctx context.Context, transcript string) string {
	g.inFlight.track()
	g.mu.Lock()
	defer g.mu.Unlock()
	g.titles++
	return "Generated Title"
}

type fakeExtractor struct{}

func (fakeExtractor) Extract(ctx context.Context, pdfPath, outDir string) ([]string, error) {
	return nil, nil
}

type fakeAnalyzer struct {
	selected []models.SelectedImage
}

func (a *fakeAnalyzer) Select(ctx context.Context, dir, topic string, max int) ([]models.SelectedImage, error) {
	return a.selected, nil
}

func (a *fakeAnalyzer) Publish(ctx context.Context, images []models.SelectedImage, prefix string) []models.SelectedImage {
	out := make([]models.SelectedImage, len(images))
	for i, img := range images {
		img.Filename = prefix + "_" + img.Filename
		out[i] = img
	}
	return out
}

type testEnv struct {
	manager   *Manager
	store     *MemoryStore
	fetcher   *fakeFetcher
	trans     *fakeTranscriber
	gen       *fakeGenerator
	analyzer  *fakeAnalyzer
	outputDir string
}

func newTestEnv(t *testing.T, capacity, maxConcurrent int) *testEnv {
	t.Helper()
	return newTestEnvWithSlots(t, capacity, maxConcurrent, 1)
}

func newTestEnvWithSlots(t *testing.T, capacity, maxConcurrent, acceleratorSlots int) *testEnv {
	t.Helper()

	env := &testEnv{
		store: NewMemoryStore(capacity),
		fetcher: &fakeFetcher{info: models.VideoInfo{
			Title:    "Intro to Graphs",
			Duration: 125,
			Uploader: "Lecturer",
		}},
		trans: &fakeTranscriber{transcript: models.Transcript{
			Text:     "graphs have nodes and edges",
			Language: "en",
			Segments: []models.Segment{{Start: 0, End: 2.5, Text: "graphs have nodes and edges"}},
		}},
		gen:       &fakeGenerator{},
		analyzer:  &fakeAnalyzer{},
		outputDir: t.TempDir(),
	}

	log := logger.NewNop()
	env.manager = NewManager(env.store, Dependencies{
		Fetcher:     env.fetcher,
		Transcriber: env.trans,
		Generator:   env.gen,
		Extractor:   fakeExtractor{},
		Analyzer:    env.analyzer,
		Results:     results.NewAssembler(env.outputDir, t.TempDir(), log),
	}, Options{
		AllowedDomains:   []string{"youtube.com", "youtu.be", "vimeo.com"},
		DefaultModel:     "turbo",
		MaxConcurrent:    maxConcurrent,
		AcceleratorSlots: acceleratorSlots,
		MaxImages:        6,
		TempDir:          t.TempDir(),
	}, log)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = env.manager.Shutdown(ctx)
	})
	return env
}

// waitTerminal polls until the job finishes and returns the final view.
func waitTerminal(t *testing.T, m *Manager, id string) *View {
	t.Helper()
	var view *View
	require.Eventually(t, func() bool {
		v, err := m.Status(context.Background(), id)
		if err != nil {
			return false
		}
		view = v
		return v.Status.Terminal()
	}, 5*time.Second, 5*time.Millisecond)
	return view
}
