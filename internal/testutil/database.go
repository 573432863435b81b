//go:build integration

package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/GlebRadaev/prizepool/internal/pg"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type TestDatabase struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	URL       string
}

// SetupTestDatabase starts a disposable PostgreSQL container with all
// migrations applied. The container is terminated on test cleanup.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("prizepool_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		postgres.BasicWaitStrategies(),
		testcontainers.WithLabels(map[string]string{
			"test":      "prizepool-repository",
			"test-name": t.Name(),
		}),
	)
	require.NoError(t, err)

	testDB := &TestDatabase{Container: container}
	t.Cleanup(func() { testDB.cleanup(t) })

	testDB.URL, err = container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	testDB.Pool, err = pgxpool.New(ctx, testDB.URL)
	require.NoError(t, err)
	require.NoError(t, pg.RunMigrations(testDB.Pool))

	return testDB
}

func (td *TestDatabase) cleanup(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if td.Pool != nil {
		td.Pool.Close()
	}
	if err := td.Container.Terminate(ctx); err != nil {
		t.Logf("failed to terminate test container: %v", err)
	}
}
