package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/muhammadolammi/skillchecker/internal/scan"
)

// retryWait is the base backoff between attempts; tests shorten it.
var retryWait = 500 * time.Millisecond

// retry retries a function up to `attempts` times with linear backoff,
// giving up early once ctx is done
func retry[T any](ctx context.Context, attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i == attempts-1 {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, fmt.Errorf("aborted after %d attempts: %w (last error: %v)", i+1, ctxErr, lastErr)
		}

		timer := time.NewTimer(retryWait * time.Duration(i+1))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, fmt.Errorf("aborted after %d attempts: %w (last error: %v)", i+1, ctx.Err(), lastErr)
		case <-timer.C:
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

func newR2Client(ctx context.Context, r2 *R2Config) (*s3.Client, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r2.AccessKey, r2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}
	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(r2.endpoint())
	}), nil
}

// --- File Download ---

func DownloadFromR2(ctx context.Context, client objectGetter, bucket, key string) ([]byte, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	_, err = io.Copy(buf, out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

// --- Rendering ---

func renderReport(w io.Writer, report *scan.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	matched := "None"
	if len(report.Result.Matched) > 0 {
		matched = strings.Join(report.Result.Matched, ", ")
	}
	_, err := fmt.Fprintf(w, "Match Score: %d%%\nMatched keywords: %s\n", report.Result.Percentage, matched)
	return err
}
