package avatar

import (
	"bytes"
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type S3Opts struct {
	Region    string
	Endpoint  string // set for MinIO or other S3-compatible stores
	AccessKey string
	SecretKey string
	Bucket    string
	Folder    string
	PublicURL string
}

// S3Store keeps avatars in an S3 bucket under Folder, one uuid key per image.
type S3Store struct {
	client *s3.Client
	opts   S3Opts
}

func NewS3Store(ctx context.Context, o S3Opts) (*S3Store, error) {
	if o.Folder == "" {
		o.Folder = "avatars"
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(o.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			o.AccessKey, o.SecretKey, "",
		)))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		}
	})
	return &S3Store{client: client, opts: o}, nil
}

func (s *S3Store) Upload(ctx context.Context, data []byte, contentType string) (Image, error) {
	key := s.opts.Folder + "/" + uuid.NewString()
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return Image{}, err
	}
	return Image{ExternalID: key, URL: s.publicURL(key)}, nil
}

func (s *S3Store) Destroy(ctx context.Context, externalID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(externalID),
	})
	return err
}

func (s *S3Store) publicURL(key string) string {
	base := strings.TrimSuffix(s.opts.PublicURL, "/")
	if base == "" {
		base = strings.TrimSuffix(s.opts.Endpoint, "/") + "/" + s.opts.Bucket
	}
	return base + "/" + key
}
