package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nguyentantai21042004/video-summarizer/internal/results"
)

func finishedJob(id string, at time.Time) *Job {
	j := newJob(id, Request{URL: testURL}, at)
	j.fail("boom")
	j.FinishedAt = &at
	return j
}

func TestMemoryStoreEvictsOldestTerminal(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(3)
	base := time.Now()

	require.NoError(t, s.Create(ctx, finishedJob("newer", base.Add(time.Minute))))
	require.NoError(t, s.Create(ctx, finishedJob("older", base)))
	require.NoError(t, s.Create(ctx, newJob("running", Request{}, base)))

	require.NoError(t, s.Create(ctx, newJob("fresh", Request{}, base)))

	_, err := s.Get(ctx, "older")
	assert.ErrorIs(t, err, ErrNotFound)
	for _, id := range []string{"newer", "running", "fresh"} {
		_, err := s.Get(ctx, id)
		assert.NoError(t, err, id)
	}

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestMemoryStoreRejectsWhenAllRunning(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2)

	require.NoError(t, s.Create(ctx, newJob("a", Request{}, time.Now())))
	require.NoError(t, s.Create(ctx, newJob("b", Request{}, time.Now())))

	err := s.Create(ctx, newJob("c", Request{}, time.Now()))
	assert.ErrorIs(t, err, ErrAtCapacity)

	_, err = s.Get(ctx, "a")
	assert.NoError(t, err)
	_, err = s.Get(ctx, "b")
	assert.NoError(t, err)
}

func TestMemoryStoreDuplicateID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	require.NoError(t, s.Create(ctx, newJob("a", Request{}, time.Now())))
	assert.ErrorIs(t, s.Create(ctx, newJob("a", Request{}, time.Now())), errDuplicateID)
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	require.NoError(t, s.Create(ctx, newJob("a", Request{}, time.Now())))

	j, err := s.Get(ctx, "a")
	require.NoError(t, err)
	j.Status = StatusCompleted

	again, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, StatusStarting, again.Status)

	assert.ErrorIs(t, s.Update(ctx, "missing", func(*Job) {}), ErrNotFound)
}

func TestJobTransitions(t *testing.T) {
	j := newJob("a", Request{}, time.Now())
	assert.Equal(t, StatusStarting, j.Status)
	assert.Zero(t, j.Progress)

	j.advance(StatusTranscribing, 40)
	j.advance(StatusSummarizing, 20)
	assert.Equal(t, StatusSummarizing, j.Status)
	assert.Equal(t, 40, j.Progress)

	j.complete(&Result{Summary: "done"}, results.Manifest{results.FileSummary: "a_summary.txt"})
	assert.Equal(t, StatusCompleted, j.Status)
	assert.Equal(t, 100, j.Progress)
	require.NotNil(t, j.FinishedAt)

	j.fail("late failure")
	j.advance(StatusSaving, 90)
	assert.Equal(t, StatusCompleted, j.Status)
	assert.Empty(t, j.Error)
	assert.Equal(t, "done", j.Result.Summary)
}

func TestViewShowsOneOutcome(t *testing.T) {
	j := newJob("a", Request{}, time.Now())
	j.Result = &Result{Summary: "stale"}
	j.fail("boom")

	v := j.view()
	assert.Equal(t, "boom", v.Error)
	assert.Nil(t, v.Result)
	assert.Nil(t, v.Files)
}

func TestSectionStatus(t *testing.T) {
	s := SectionStatus("overview")
	assert.Equal(t, Status("generating_overview"), s)

	name, ok := s.Section()
	assert.True(t, ok)
	assert.Equal(t, "overview", name)

	_, ok = StatusGeneratingStudyMaterial.Section()
	assert.False(t, ok)
	_, ok = StatusSaving.Section()
	assert.False(t, ok)
}

func setupRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, container.Terminate(ctx)) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	s, err := NewRedisStore(ctx, "redis://"+host+":"+port.Port(), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	s := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, newJob("r1", Request{URL: testURL}, time.Now())))
	assert.ErrorIs(t, s.Create(ctx, newJob("r1", Request{}, time.Now())), errDuplicateID)

	require.NoError(t, s.Update(ctx, "r1", func(j *Job) { j.advance(StatusDownloading, 20) }))
	require.NoError(t, s.Update(ctx, "r1", func(j *Job) { j.complete(&Result{Summary: "ok"}, nil) }))

	j, err := s.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, j.Status)
	assert.Equal(t, "ok", j.Result.Summary)
	assert.Equal(t, testURL, j.Request.URL)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, "missing", func(*Job) {}), ErrNotFound)

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
