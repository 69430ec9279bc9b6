package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lgbarn/movetree-go/internal/config"
	"github.com/lgbarn/movetree-go/internal/study"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestNewStoreMemory(t *testing.T) {
	store, closeStore, err := newStore(context.Background(), config.NewStoreConfig(), zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &study.MemoryStore{}, store)
}

func TestNewStoreRedisUnreachable(t *testing.T) {
	cfg := config.NewStoreConfig()
	cfg.Backend = config.StoreRedis
	cfg.RedisAddr = freeAddr(t)

	_, _, err := newStore(context.Background(), cfg, zaptest.NewLogger(t).Sugar())
	assert.Error(t, err)
}

func TestServeShutsDown(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Server.Addr = freeAddr(t)
	cfg.Server.ShutdownTimeout = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, zaptest.NewLogger(t).Sugar()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + cfg.Server.Addr + "/studies")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
