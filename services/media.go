package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLTTL = 15 * time.Minute

// Extensions accepted for cover and profile images.
var allowedImageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// MediaStorage issues presigned S3 PUT URLs so clients upload images
// directly; the API only hands out the destination.
type MediaStorage struct {
	presigner *s3.PresignClient
	bucket    string
	region    string
}

func NewMediaStorage(ctx context.Context, bucket, region string) (*MediaStorage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &MediaStorage{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		region:    region,
	}, nil
}

// UploadTarget is a one-shot destination for an image upload.
type UploadTarget struct {
	UploadURL   string `json:"uploadUrl"`
	PublicURL   string `json:"publicUrl"`
	ContentType string `json:"contentType"`
	ExpiresIn   int    `json:"expiresInSeconds"`
}

// NewUploadTarget presigns a PUT for a fresh object key derived from the
// uploader and filename. The filename only contributes its extension.
func (m *MediaStorage) NewUploadTarget(ctx context.Context, userID uuid.UUID, filename string) (*UploadTarget, error) {
	ext := strings.ToLower(path.Ext(filename))
	contentType, ok := allowedImageExtensions[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported image extension %q", ext)
	}

	key := fmt.Sprintf("uploads/%s/%s%s", userID, uuid.New(), ext)

	presigned, err := m.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      &m.bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(uploadURLTTL))
	if err != nil {
		return nil, fmt.Errorf("presigning upload for %s: %w", key, err)
	}

	return &UploadTarget{
		UploadURL:   presigned.URL,
		PublicURL:   fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.bucket, m.region, key),
		ContentType: contentType,
		ExpiresIn:   int(uploadURLTTL.Seconds()),
	}, nil
}
