package ondemand

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Fetcher downloads the compressed file from a bucket.
type S3Fetcher struct {
	Downloader *manager.Downloader
	Bucket     string
	Key        string
}

func NewS3Fetcher(ctx context.Context, region, bucket, key string) (*S3Fetcher, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg)

	return &S3Fetcher{
		Downloader: manager.NewDownloader(client),
		Bucket:     bucket,
		Key:        key,
	}, nil
}

func (f *S3Fetcher) Fetch(ctx context.Context, w io.WriterAt) (int64, error) {
	n, err := f.Downloader.Download(ctx, w, &s3.GetObjectInput{
		Bucket: aws.String(f.Bucket),
		Key:    aws.String(f.Key),
	})
	if err != nil {
		return n, fmt.Errorf("failed to download s3://%s/%s: %w", f.Bucket, f.Key, err)
	}
	return n, nil
}

// FileFetcher copies the compressed file from a local path.
type FileFetcher struct {
	Path string
}

func (f FileFetcher) Fetch(ctx context.Context, w io.WriterAt) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	src, err := os.Open(f.Path)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	return io.Copy(io.NewOffsetWriter(w, 0), src)
}
