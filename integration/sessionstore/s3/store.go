package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
)

// Client covers the S3 operations the store performs. *s3.Client from
// aws-sdk-go-v2 satisfies it; tests substitute a mock.
type Client interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *awss3.DeleteObjectInput, optFns ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error)
}

// Config contains connection settings for S3 or an S3-compatible service.
type Config struct {
	Bucket         string `env:"S3_SESSION_BUCKET"`
	Region         string `env:"S3_SESSION_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"S3_SESSION_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SESSION_SECRET_KEY"`
	Endpoint       string `env:"S3_SESSION_ENDPOINT"`
	ForcePathStyle bool   `env:"S3_SESSION_FORCE_PATH_STYLE" envDefault:"false"`
}

// Store keeps each session as one JSON object in an S3 bucket.
// It is safe for concurrent use.
type Store struct {
	client Client
	bucket string
	prefix string
}

// Option configures a Store.
type Option func(*storeOptions)

type storeOptions struct {
	client Client
	prefix string
}

// WithClient sets a pre-configured S3 client, bypassing AWS config loading.
// Useful for testing with mocks.
func WithClient(client Client) Option {
	return func(o *storeOptions) {
		o.client = client
	}
}

// WithKeyPrefix overrides the default "sessions/" object key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(o *storeOptions) {
		o.prefix = prefix
	}
}

// New creates a Store for the configured bucket. Unless WithClient is given,
// it loads the default AWS configuration, applying static credentials and a
// custom endpoint from cfg when set.
func New(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrMissingConfig
	}

	options := storeOptions{prefix: "sessions/"}
	for _, opt := range opts {
		opt(&options)
	}

	client := options.client
	if client == nil {
		awsOpts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOpts = append(awsOpts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadConfig, err)
		}

		client = awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
	}

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		prefix: options.prefix,
	}, nil
}

type sessionObject struct {
	Data    map[string]any `json:"data"`
	Expires time.Time      `json:"expires,omitzero"`
}

func (s *Store) key(id string) string {
	return s.prefix + id + ".json"
}

// CreateData stores the data under a freshly generated ID and returns it.
// Data that is already expired is not written; the ID is still returned so
// the caller can serialize a cookie that will never resolve to a session.
func (s *Store) CreateData(ctx context.Context, data map[string]any, expires time.Time) (string, error) {
	id := uuid.NewString()

	if !expires.IsZero() && !expires.After(time.Now()) {
		return id, nil
	}

	if err := s.put(ctx, id, data, expires); err != nil {
		return "", err
	}
	return id, nil
}

// ReadData returns the data stored under id, or (nil, nil) when the id is
// unknown or the record has expired. Expired objects are removed on read.
func (s *Store) ReadData(ctx context.Context, id string) (map[string]any, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("s3 session store: read %q: %w", id, err)
	}
	defer func() { _ = out.Body.Close() }()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 session store: read %q: %w", id, err)
	}

	var obj sessionObject
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("s3 session store: decode %q: %w", id, err)
	}

	if !obj.Expires.IsZero() && !obj.Expires.After(time.Now()) {
		_ = s.DeleteData(ctx, id)
		return nil, nil
	}

	if obj.Data == nil {
		obj.Data = map[string]any{}
	}
	return obj.Data, nil
}

// UpdateData replaces the data stored under id. Updating with an expiry in
// the past deletes the record instead.
func (s *Store) UpdateData(ctx context.Context, id string, data map[string]any, expires time.Time) error {
	if !expires.IsZero() && !expires.After(time.Now()) {
		return s.DeleteData(ctx, id)
	}
	return s.put(ctx, id, data, expires)
}

// DeleteData removes the record for id. Unknown and empty ids are no-ops.
func (s *Store) DeleteData(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil && !isNoSuchKey(err) {
		return fmt.Errorf("s3 session store: delete %q: %w", id, err)
	}
	return nil
}

func (s *Store) put(ctx context.Context, id string, data map[string]any, expires time.Time) error {
	body, err := json.Marshal(sessionObject{Data: data, Expires: expires})
	if err != nil {
		return fmt.Errorf("s3 session store: encode %q: %w", id, err)
	}

	_, err = s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(id)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 session store: write %q: %w", id, err)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}
