package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"jan-server/catalog-api/internal/config"
	"jan-server/catalog-api/internal/domain/media"
)

var errStorageDisabled = errors.New("media storage backend is not configured; set MEDIA_S3_* to enable uploads")

// S3Storage keeps media bytes in an S3-compatible bucket.
type S3Storage struct {
	bucket   string
	client   *s3.Client
	uploader *manager.Uploader
	log      zerolog.Logger
	disabled bool
}

var _ media.Storage = (*S3Storage)(nil)

func NewS3Storage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*S3Storage, error) {
	logger := log.With().Str("component", "s3-storage").Logger()
	storage := &S3Storage{
		bucket: strings.TrimSpace(cfg.S3Bucket),
		log:    logger,
	}

	accessKey := strings.TrimSpace(cfg.S3AccessKeyID)
	secretKey := strings.TrimSpace(cfg.S3SecretKey)
	if storage.bucket == "" || accessKey == "" || secretKey == "" {
		logger.Warn().Msg("MEDIA_S3_BUCKET or credentials are not set; media uploads will be disabled until configured")
		storage.disabled = true
		return storage, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	storage.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3UsePathStyle
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
	})
	storage.uploader = manager.NewUploader(storage.client)

	logger.Info().Str("bucket", storage.bucket).Str("endpoint", cfg.S3Endpoint).Msg("s3 storage initialized")
	return storage, nil
}

func (s *S3Storage) ensureEnabled() error {
	if s.disabled {
		return errStorageDisabled
	}
	return nil
}

// Name identifies the backend on media records.
func (s *S3Storage) Name() string {
	return "s3"
}

// Upload writes the object only if key is free (If-None-Match: *).
func (s *S3Storage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if err := s.ensureEnabled(); err != nil {
		return err
	}
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		IfNoneMatch:   aws.String("*"),
	})
	if isConditionFailure(err) {
		return fmt.Errorf("%w: %s", media.ErrObjectExists, key)
	}
	return err
}

func (s *S3Storage) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if err := s.ensureEnabled(); err != nil {
		return nil, "", err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, "", fmt.Errorf("%w: %s", media.ErrObjectNotFound, key)
		}
		return nil, "", err
	}
	mime := ""
	if out.ContentType != nil {
		mime = *out.ContentType
	}
	return out.Body, mime, nil
}

// Move copies the object to its new key and removes the old one. A taken
// target is refused; the check and the copy are not atomic on S3.
func (s *S3Storage) Move(ctx context.Context, from, to string) error {
	if err := s.ensureEnabled(); err != nil {
		return err
	}
	taken, err := s.Exists(ctx, to)
	if err != nil {
		return fmt.Errorf("check move target: %w", err)
	}
	if taken {
		return fmt.Errorf("%w: %s", media.ErrObjectExists, to)
	}
	_, err = s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		CopySource: aws.String(url.PathEscape(s.bucket) + "/" + escapeKey(from)),
		Key:        aws.String(to),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return fmt.Errorf("%w: %s", media.ErrObjectNotFound, from)
		}
		return fmt.Errorf("copy object: %w", err)
	}
	if err := s.Delete(ctx, from); err != nil {
		return fmt.Errorf("remove moved object: %w", err)
	}
	return nil
}

// Delete removes the object. S3 treats missing keys as success.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	if err := s.ensureEnabled(); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Storage) Exists(ctx context.Context, key string) (bool, error) {
	if err := s.ensureEnabled(); err != nil {
		return false, err
	}
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Health performs a simple HeadBucket request.
func (s *S3Storage) Health(ctx context.Context) error {
	if s.disabled {
		return nil
	}
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return err
}

// isConditionFailure reports a rejected conditional write: 412 when the key
// exists, 409 when another conditional write to it is in flight.
func isConditionFailure(err error) bool {
	var respErr *awshttp.ResponseError
	if !errors.As(err, &respErr) {
		return false
	}
	code := respErr.HTTPStatusCode()
	return code == http.StatusPreconditionFailed || code == http.StatusConflict
}

func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
