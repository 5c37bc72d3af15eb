package cache

import (
	"context"
	"testing"

	"trial-bridge/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	log, hook := test.NewNullLogger()

	client, err := NewRedisClient(context.Background(), config.RedisConfig{
		Host: mr.Host(),
		Port: mr.Port(),
	}, log)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	mr.CheckGet(t, "k", "v")
	assert.Equal(t, mr.Addr(), hook.LastEntry().Data["addr"])
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	log, _ := test.NewNullLogger()
	client, err := NewRedisClient(context.Background(), config.RedisConfig{Host: host, Port: port}, log)
	assert.Error(t, err)
	assert.Nil(t, client)
}
