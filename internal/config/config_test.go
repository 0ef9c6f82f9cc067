package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/config"
)

func TestLoad_FromEnvFile(t *testing.T) {
	td := t.TempDir()

	envContent := `HTTP_PORT=9090
POSTGRES_HOST=db
POSTGRES_PORT=5433
POSTGRES_USER=assets
POSTGRES_PASSWORD=secret
POSTGRES_DB=assets

REDIS_HOST=cache
REDIS_PORT=6380
REDIS_PASSWORD=
REDIS_DB=1

MINIO_ENDPOINT=minio:9000
MINIO_ACCESS_KEY=admin
MINIO_SECRET_KEY=admin12345
MINIO_EQUIPMENT_BUCKET=equipments
MINIO_VEHICLE_BUCKET=vehicles
`
	if err := os.WriteFile(td+"/.env", []byte(envContent), 0o644); err != nil {
		t.Fatal(err)
	}

	// cleanenv.ReadConfig calls os.Setenv for every .env entry; unset them so
	// they do not leak into other tests in this package.
	t.Cleanup(func() {
		for _, k := range []string{
			"HTTP_PORT",
			"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
			"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
			"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY",
			"MINIO_EQUIPMENT_BUCKET", "MINIO_VEHICLE_BUCKET",
		} {
			os.Unsetenv(k)
		}
	})

	origWd, _ := os.Getwd()
	defer os.Chdir(origWd)
	if err := os.Chdir(td); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load()
	assert.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)

	assert.Equal(t, "db", cfg.Postgres.Host)
	assert.Equal(t, uint16(5433), cfg.Postgres.Port)
	assert.Equal(t, "assets", cfg.Postgres.Username)
	assert.Equal(t, "secret", cfg.Postgres.Password)
	assert.Equal(t, "assets", cfg.Postgres.Database)

	assert.Equal(t, "cache", cfg.Redis.Host)
	assert.Equal(t, "6380", cfg.Redis.Port)
	assert.Equal(t, 1, cfg.Redis.Db)

	assert.Equal(t, "minio:9000", cfg.MinIO.MinioEndpoint)
	assert.Equal(t, "equipments", cfg.MinIO.EquipmentBucket)
	assert.Equal(t, "vehicles", cfg.MinIO.VehicleBucket)
}

func TestLoad_DefaultsWithoutEnvFile(t *testing.T) {
	td := t.TempDir()
	origWd, _ := os.Getwd()
	defer os.Chdir(origWd)
	if err := os.Chdir(td); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "equipments", cfg.MinIO.EquipmentBucket)
}
