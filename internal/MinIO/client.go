package MinIO

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	MinioEndpoint     string `env:"MINIO_ENDPOINT" env-default:"minio:9000"`
	MinioAccessKey    string `env:"MINIO_ACCESS_KEY" env-default:"admin"`
	MinioSecretKey    string `env:"MINIO_SECRET_KEY" env-default:"admin12345"`
	MinioUseSSL       bool   `env:"MINIO_USE_SSL" env-default:"false"`
	// Endpoint baked into public URLs; falls back to MinioEndpoint.
	MinioPublicEndpoint string `env:"MINIO_PUBLIC_ENDPOINT" env-default:""`

	EquipmentBucket string `env:"MINIO_EQUIPMENT_BUCKET" env-default:"equipments"`
	VehicleBucket   string `env:"MINIO_VEHICLE_BUCKET" env-default:"vehicles"`
}

type MinIOClient struct {
	Client *minio.Client

	EquipmentBucket string
	VehicleBucket   string

	publicBase string
}

// readOnlyPolicy makes a bucket publicly readable so issued URLs work
// without presigning, matching how the dashboard serves part images.
const readOnlyPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": {"AWS": ["*"]},
      "Action": ["s3:GetObject"],
      "Resource": ["arn:aws:s3:::%s/*"]
    }
  ]
}`

func New(ctx context.Context, cfg Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	for _, bucket := range []string{cfg.EquipmentBucket, cfg.VehicleBucket} {
		err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
		if err != nil {
			exists, errBucketExists := client.BucketExists(ctx, bucket)
			if !(errBucketExists == nil && exists) {
				return nil, fmt.Errorf("failed to create bucket %q: %w", bucket, err)
			}
		}
		if err := client.SetBucketPolicy(ctx, bucket, fmt.Sprintf(readOnlyPolicy, bucket)); err != nil {
			return nil, fmt.Errorf("failed to set policy on bucket %q: %w", bucket, err)
		}
	}

	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}
	endpoint := cfg.MinioPublicEndpoint
	if endpoint == "" {
		endpoint = cfg.MinioEndpoint
	}

	return &MinIOClient{
		Client:          client,
		EquipmentBucket: cfg.EquipmentBucket,
		VehicleBucket:   cfg.VehicleBucket,
		publicBase:      scheme + "://" + endpoint,
	}, nil
}

// Upload stores the object and returns its public URL.
func (m *MinIOClient) Upload(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := m.Client.PutObject(ctx, bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return m.PublicURL(bucket, key), nil
}

func (m *MinIOClient) Delete(ctx context.Context, bucket, key string) error {
	return m.Client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
}

// Download opens the object for streaming and returns its size and content
// type alongside the reader. The caller closes the reader.
func (m *MinIOClient) Download(ctx context.Context, bucket, key string) (io.ReadCloser, int64, string, error) {
	obj, err := m.Client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, "", err
	}
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, 0, "", err
	}
	return obj, stat.Size, stat.ContentType, nil
}

func (m *MinIOClient) PublicURL(bucket, key string) string {
	return m.publicBase + "/" + bucket + "/" + key
}
