package server

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.PasswordHashCost = bcrypt.MinCost
	c.ShutdownTimeout = time.Second
	return c
}

func TestNewApp_InMemory(t *testing.T) {
	var buf bytes.Buffer
	app, err := NewApp(context.Background(), testConfig(), &buf)
	require.NoError(t, err)
	assert.NotNil(t, app.server)
	assert.NotNil(t, app.limiter)
	assert.Nil(t, app.redis)
	assert.Contains(t, buf.String(), "in-memory storage")
	assert.Contains(t, buf.String(), "no secret key configured")
}

func TestNewApp_UnknownLogBackend(t *testing.T) {
	c := testConfig()
	c.LogBackend = "stdout"
	_, err := NewApp(context.Background(), c, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNewApp_RedisCounterSelected(t *testing.T) {
	c := testConfig()
	c.RedisAddr = "127.0.0.1:0"
	c.SecretKey = "secret"
	app, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.NoError(t, err)
	require.NotNil(t, app.redis)
	assert.NoError(t, app.redis.Close())
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	var buf bytes.Buffer
	c := testConfig()
	c.LogBackend = config.LogBackendZap
	app, err := NewApp(context.Background(), c, &buf)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
