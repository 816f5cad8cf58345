//go:build integration

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedisContainer(ctx context.Context, t *testing.T) string {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestRedisStore_Integration(t *testing.T) {
	ctx := context.Background()
	conn := setupRedisContainer(ctx, t)

	logger, hook := test.NewNullLogger()
	store, err := NewRedisStore(conn, logger)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Ping(ctx))

	store.Set(ctx, KeyRepos, []payload{{Name: "portfolio", Count: 3}}, time.Second)
	var got []payload
	require.True(t, store.Get(ctx, KeyRepos, &got))
	assert.Equal(t, "portfolio", got[0].Name)

	time.Sleep(1500 * time.Millisecond)
	assert.False(t, store.Get(ctx, KeyRepos, &got))

	store.Delete(ctx, KeyRepos)
	assert.Empty(t, hook.AllEntries())
}
