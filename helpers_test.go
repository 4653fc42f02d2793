package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/skillchecker/internal/match"
	"github.com/muhammadolammi/skillchecker/internal/scan"
	"github.com/muhammadolammi/skillchecker/internal/skills"
)

type fakeBucket struct {
	objects  map[string]string
	failures int
	calls    int
	gotKeys  []string
}

func (f *fakeBucket) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.calls++
	f.gotKeys = append(f.gotKeys, aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key))
	if f.calls <= f.failures {
		return nil, errors.New("connection reset")
	}
	body, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func noRetryWait(t *testing.T) {
	t.Helper()
	prev := retryWait
	retryWait = 0
	t.Cleanup(func() { retryWait = prev })
}

func TestRetry(t *testing.T) {
	noRetryWait(t)

	calls := 0
	got, err := retry(context.Background(), 3, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 3, calls)

	cause := errors.New("permanent")
	calls = 0
	_, err = retry(context.Background(), 2, func() (string, error) {
		calls++
		return "", cause
	})
	assert.ErrorIs(t, err, cause)
	assert.ErrorContains(t, err, "after 2 attempts")
	assert.Equal(t, 2, calls)
}

func TestRetry_StopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := retry(ctx, 3, func() (int, error) {
		calls++
		return 0, errors.New("transient")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorContains(t, err, "transient")
	assert.Equal(t, 1, calls)
}

func TestRetry_CancelDuringBackoff(t *testing.T) {
	prev := retryWait
	retryWait = time.Hour
	t.Cleanup(func() { retryWait = prev })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(20*time.Millisecond, cancel)

	calls := 0
	_, err := retry(ctx, 3, func() (int, error) {
		calls++
		return 0, errors.New("transient")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestFetchFromR2_StopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bucket := &fakeBucket{objects: map[string]string{"cv.txt": "python"}, failures: 3}
	_, err := fetchFromR2(ctx, bucket, "uploads", "cv.txt")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, bucket.calls)
}

func TestDownloadFromR2(t *testing.T) {
	bucket := &fakeBucket{objects: map[string]string{"resumes/jane.txt": "Go and SQL"}}

	data, err := DownloadFromR2(context.Background(), bucket, "uploads", "resumes/jane.txt")
	require.NoError(t, err)
	assert.Equal(t, "Go and SQL", string(data))
	assert.Equal(t, []string{"uploads/resumes/jane.txt"}, bucket.gotKeys)

	_, err = DownloadFromR2(context.Background(), bucket, "uploads", "missing.pdf")
	assert.ErrorContains(t, err, "failed to get object")
}

func TestFetchFromR2_RetriesTransientFailures(t *testing.T) {
	noRetryWait(t)

	bucket := &fakeBucket{objects: map[string]string{"cv.txt": "python"}, failures: 2}
	data, err := fetchFromR2(context.Background(), bucket, "uploads", "cv.txt")
	require.NoError(t, err)
	assert.Equal(t, "python", string(data))
	assert.Equal(t, 3, bucket.calls)

	bucket = &fakeBucket{objects: map[string]string{"cv.txt": "python"}, failures: 3}
	_, err = fetchFromR2(context.Background(), bucket, "uploads", "cv.txt")
	assert.ErrorContains(t, err, "failed to download cv.txt")
	assert.Equal(t, 3, bucket.calls)
}

func testReport(matched []string, percentage int) *scan.Report {
	return &scan.Report{
		ID:          uuid.MustParse("6f1c2a9e-3b7d-4c55-9a10-2f3e4d5c6b7a"),
		FileName:    "resume.pdf",
		ContentType: "application/pdf",
		Source:      skills.SourceRole,
		Role:        "Backend Developer",
		Skills:      []string{"node.js", "express", "mongodb", "sql"},
		Result:      match.Result{Matched: matched, Percentage: percentage},
		ScannedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderReport_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderReport(&buf, testReport([]string{"node.js", "sql"}, 50), false))
	assert.Equal(t, "Match Score: 50%\nMatched keywords: node.js, sql\n", buf.String())

	buf.Reset()
	require.NoError(t, renderReport(&buf, testReport([]string{}, 0), false))
	assert.Equal(t, "Match Score: 0%\nMatched keywords: None\n", buf.String())
}

func TestRenderReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderReport(&buf, testReport([]string{"sql"}, 25), true))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "6f1c2a9e-3b7d-4c55-9a10-2f3e4d5c6b7a", decoded["id"])
	assert.Equal(t, "role", decoded["source"])
	assert.Equal(t, "Backend Developer", decoded["role"])

	result, ok := decoded["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(25), result["percentage"])
	assert.Equal(t, []any{"sql"}, result["matched"])
}

func TestRenderRoles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderRoles(&buf, skills.DefaultCatalog()))
	assert.Equal(t,
		"Frontend Developer: html, css, javascript, react.js\n"+
			"Backend Developer: node.js, express, mongodb, sql\n"+
			"Full Stack Developer: react.js, node.js, express, sql, java\n",
		buf.String())
}
