package publish

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"pkg.jsn.cam/tablegen/internal/generator"
)

// S3Publisher uploads files to an S3 bucket.
type S3Publisher struct {
	client *s3.Client
	bucket string
	prefix string // Optional key prefix (e.g., "raw/")
}

// S3Config holds configuration for S3Publisher.
type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string // Optional custom endpoint (for MinIO, LocalStack, etc.)
	Prefix   string
}

// NewS3Publisher loads the default AWS credential chain and builds a client.
func NewS3Publisher(ctx context.Context, cfg S3Config) (*S3Publisher, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // Required for MinIO/LocalStack
		}
	})

	return &S3Publisher{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (p *S3Publisher) Publish(ctx context.Context, localPath, objectName string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", &generator.IOError{Op: "open", Path: localPath, Err: err}
	}
	defer f.Close()

	key := p.prefix + objectName
	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", &generator.IOError{Op: "s3 put", Path: key, Err: err}
	}

	return fmt.Sprintf("s3://%s/%s", p.bucket, key), nil
}

// Close is a no-op; the S3 client holds no resources that need releasing
func (p *S3Publisher) Close() error {
	return nil
}
