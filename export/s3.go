// Package export uploads recovered or reconstructed media files to S3,
// the one outward destination this tool writes to besides the local
// filesystem.
package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader pushes local files to a single S3 bucket.
type Uploader struct {
	client *s3.Client
	bucket string
}

// NewUploader constructs an S3 client the same way the rest of this
// codebase's AWS SDK v2 clients are built: via config.LoadDefaultConfig,
// honoring AWS_REGION with a us-east-1 fallback.
func NewUploader(bucket string) (*Uploader, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}

	log.Printf("[export] initializing S3 client region=%s bucket=%s", region, bucket)

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &Uploader{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// ParseS3URI splits an "s3://bucket/key" destination into its parts. The
// bucket named in the URI overrides the Uploader's configured bucket,
// mirroring how presigned-URL helpers elsewhere take the bucket as a
// parameter rather than assuming a single fixed bucket per process.
func ParseS3URI(uri string) (bucket, key string, err error) {
	const prefix = "s3://"
	if !strings.HasPrefix(uri, prefix) {
		return "", "", fmt.Errorf("not an s3 uri: %s", uri)
	}
	rest := uri[len(prefix):]
	idx := strings.IndexByte(rest, '/')
	if idx < 0 || idx == 0 || idx == len(rest)-1 {
		return "", "", fmt.Errorf("malformed s3 uri, expected s3://bucket/key: %s", uri)
	}
	return rest[:idx], rest[idx+1:], nil
}

// UploadFile uploads the file at localPath to destination ("s3://bucket/key")
// and returns a presigned GET URL valid for one hour so the caller can hand
// it straight back to a UI without a second round trip.
func (u *Uploader) UploadFile(localPath, destination string) (string, error) {
	bucket, key, err := ParseS3URI(destination)
	if err != nil {
		return "", err
	}
	if bucket == "" {
		bucket = u.bucket
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	log.Printf("[export] uploading %s (%d bytes) to s3://%s/%s", localPath, info.Size(), bucket, key)

	_, err = u.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentTypeFor(key)),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3://%s/%s: %w", bucket, key, err)
	}

	return u.presignedURL(bucket, key)
}

func (u *Uploader) presignedURL(bucket, key string) (string, error) {
	presignClient := s3.NewPresignClient(u.client)
	out, err := presignClient.PresignGetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, func(po *s3.PresignOptions) {
		po.Expires = time.Hour
	})
	if err != nil {
		return "", fmt.Errorf("presign s3://%s/%s: %w", bucket, key, err)
	}
	return out.URL, nil
}

func contentTypeFor(key string) string {
	if strings.HasSuffix(key, ".mp4") {
		return "video/mp4"
	}
	return "application/octet-stream"
}
