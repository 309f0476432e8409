package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRedisStorageRepository_Key(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{prefix: "", want: DefaultRedisPrefix + ":financeFlowToken"},
		{prefix: "gw-bank-client", want: "gw-bank-client:financeFlowToken"},
		{prefix: "gw-bank-client:", want: "gw-bank-client:financeFlowToken"},
		{prefix: " app:: ", want: "app:financeFlowToken"},
		{prefix: ":", want: DefaultRedisPrefix + ":financeFlowToken"},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRedisStorageRepository(nil, tt.prefix).key("financeFlowToken"))
		})
	}
}

func TestRedisStorageRepository(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer container.Terminate(ctx)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	defer client.Close()

	repo := NewRedisStorageRepository(client, "")
	exerciseStorage(t, repo)

	require.NoError(t, repo.Set(ctx, "k", "v"))
	raw, err := client.Get(ctx, DefaultRedisPrefix+":k").Result()
	assert.NoError(t, err)
	assert.Equal(t, "v", raw)
}

func TestRedisStorageRepository_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	repo := NewRedisStorageRepository(client, "test")
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, "k")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, redis.Nil))
	assert.False(t, ok)
	assert.Error(t, repo.Set(ctx, "k", "v"))
	assert.Error(t, repo.Delete(ctx, "k"))
}
