package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/virtuali-gob/backend/internal/domain/providers"
	"github.com/virtuali-gob/backend/pkg/config"
	apperrors "github.com/virtuali-gob/backend/pkg/errors"
)

// SpacesAdapter implements BlobStore on DigitalOcean Spaces through the
// S3-compatible API.
type SpacesAdapter struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewSpacesAdapter creates a new Spaces blob store adapter.
func NewSpacesAdapter(ctx context.Context, cfg *config.SpacesConfig) (providers.BlobStore, error) {
	if cfg == nil || cfg.Bucket == "" {
		return nil, errors.New("spaces bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("spaces credentials are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load spaces config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
	})

	return &SpacesAdapter{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: bucketURL(cfg.Endpoint, cfg.Bucket),
	}, nil
}

// Get downloads the object stored under key.
func (a *SpacesAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("object %s not found", key))
		}
		return nil, apperrors.NewExternalError("failed to download object", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to read object body", err)
	}
	return data, nil
}

// Put stores body under key and returns the object's public location.
func (a *SpacesAdapter) Put(ctx context.Context, key string, body []byte, contentType string, public bool) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	}
	if public {
		input.ACL = types.ObjectCannedACLPublicRead
	}

	if _, err := a.client.PutObject(ctx, input); err != nil {
		return "", apperrors.NewExternalError("failed to upload object", err)
	}

	return a.publicURL + "/" + key, nil
}

// List returns the objects whose keys start with prefix.
func (a *SpacesAdapter) List(ctx context.Context, prefix string) ([]providers.BlobObject, error) {
	objects := []providers.BlobObject{}

	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewExternalError("failed to list objects", err)
		}
		for _, obj := range page.Contents {
			objects = append(objects, providers.BlobObject{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
				URL:          a.publicURL + "/" + aws.ToString(obj.Key),
			})
		}
	}

	return objects, nil
}

// bucketURL builds the virtual-hosted public URL of the bucket from the
// regional endpoint.
func bucketURL(endpoint, bucket string) string {
	trimmed := strings.TrimSuffix(endpoint, "/")
	if strings.HasPrefix(trimmed, "https://") {
		return "https://" + bucket + "." + strings.TrimPrefix(trimmed, "https://")
	}
	if strings.HasPrefix(trimmed, "http://") {
		return "http://" + bucket + "." + strings.TrimPrefix(trimmed, "http://")
	}
	return "https://" + bucket + "." + trimmed
}
