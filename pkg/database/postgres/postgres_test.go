package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Desco-devs/desco-asset-management-sub005/pkg/database/postgres"
)

func TestNew(t *testing.T) {
	// pgxpool connects lazily, so New only validates the conn string here.
	pool, err := postgres.New(context.Background(), postgres.Config{
		Host:     "localhost",
		Port:     5432,
		Username: "desco",
		Password: "desco",
		Database: "assets",
	})
	assert.NoError(t, err)
	assert.NotNil(t, pool)
	pool.Close()
}
