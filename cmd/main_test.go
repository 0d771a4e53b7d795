package main

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

// nothing listens on port 1
const unreachableDSN = "root@tcp(127.0.0.1:1)/kpmg?timeout=200ms"

func setRetryDelay(t *testing.T, d time.Duration) {
	old := connectRetryDelay
	connectRetryDelay = d
	t.Cleanup(func() { connectRetryDelay = old })
}

func TestConnectDBGivesUpAfterRetries(t *testing.T) {
	setRetryDelay(t, time.Millisecond)

	db, err := connectDB(context.Background(), unreachableDSN, "kpmg", 2)
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to connect to DB kpmg after 2 attempts")
}

func TestConnectDBStopsWhenCancelled(t *testing.T) {
	setRetryDelay(t, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	db, err := connectDB(ctx, unreachableDSN, "kpmg", 100)
	require.Error(t, err)
	assert.Nil(t, db)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	err := run(context.Background(), []string{"frobnicate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "frobnicate"`)
}

func TestRunHelp(t *testing.T) {
	require.NoError(t, run(context.Background(), []string{"help"}))
}

func TestRunRejectsBadConfig(t *testing.T) {
	t.Setenv("DB_CONNECT_RETRIES", "0")

	err := run(context.Background(), []string{"help"})
	require.Error(t, err)
}
