package services

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageStorage menyimpan gambar menu di object storage dan mengembalikan URL
// publiknya. Controller memegang interface ini supaya test bisa memakai stub.
type ImageStorage interface {
	UploadImage(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

// S3Storage adalah implementasi ImageStorage di atas bucket S3-compatible.
type S3Storage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewS3StorageFromEnv membaca konfigurasi S3 dari env. Mengembalikan nil
// (bukan error) kalau S3_ENDPOINT kosong; upload gambar saja yang mati,
// aplikasi lain tetap jalan.
func NewS3StorageFromEnv() (*S3Storage, error) {
	endpoint := os.Getenv("S3_ENDPOINT")
	if endpoint == "" {
		return nil, nil
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("S3_ACCESS_KEY"), os.Getenv("S3_SECRET_KEY"), ""),
		Secure: os.Getenv("S3_INSECURE") != "true",
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		bucket = "smartcafe-menu"
	}
	publicURL := os.Getenv("S3_PUBLIC_URL")
	if publicURL == "" {
		publicURL = "https://" + endpoint + "/" + bucket
	}

	return &S3Storage{client: client, bucket: bucket, publicURL: publicURL}, nil
}

func (s *S3Storage) UploadImage(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}
	return fmt.Sprintf("%s/%s", s.publicURL, objectName), nil
}
