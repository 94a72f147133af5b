package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Options configures where objects land and how their URLs are built.
type S3Options struct {
	Bucket string
	// PublicBaseURL, when set, is joined with the object key to form the
	// URL stored alongside an application. Otherwise an s3:// URI is used.
	// Objects are uploaded private, so this must be a CDN or proxy that
	// reads the bucket with its own credentials (for example CloudFront
	// with origin access control), not the bucket's own endpoint.
	PublicBaseURL string
}

// S3Service uploads résumés to Amazon S3 (or compatible APIs).
type S3Service struct {
	client        *s3.Client
	uploader      *manager.Uploader
	bucket        string
	publicBaseURL string
}

func NewS3Service(client *s3.Client, opts S3Options) (*S3Service, error) {
	if opts.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if opts.PublicBaseURL != "" {
		u, err := url.Parse(opts.PublicBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("public base url %q must be an absolute http(s) url", opts.PublicBaseURL)
		}
	}
	return &S3Service{
		client:        client,
		uploader:      manager.NewUploader(client),
		bucket:        opts.Bucket,
		publicBaseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
	}, nil
}

func (s *S3Service) Upload(ctx context.Context, in UploadInput) (Object, error) {
	key := strings.TrimLeft(in.Key, "/")
	if key == "" {
		return Object{}, errors.New("object key is required")
	}
	if in.Body == nil {
		return Object{}, errors.New("object body is required")
	}

	counter := &countingReader{r: in.Body}
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   counter,
		ACL:    types.ObjectCannedACLPrivate,
	}
	if in.ContentType != "" {
		input.ContentType = aws.String(in.ContentType)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return Object{}, fmt.Errorf("upload %s: %w", key, err)
	}

	return Object{
		Key:  key,
		URL:  s.objectURL(key),
		Size: counter.n,
	}, nil
}

func (s *S3Service) Delete(ctx context.Context, key string) error {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return errors.New("object key is required")
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Service) objectURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key)
}

var _ Service = (*S3Service)(nil)

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
