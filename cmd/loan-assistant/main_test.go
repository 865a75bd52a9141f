// cmd/loan-assistant/main_test.go
package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-assistant/internal/common/scheduler"
)

func TestRunOnLoop_WaitsForTheCallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewRealtime()
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = sched.Run(ctx)
	}()

	ran := false
	require.True(t, runOnLoop(ctx, sched, func() {
		time.Sleep(20 * time.Millisecond)
		ran = true
	}))
	assert.True(t, ran, "runOnLoop returns only after fn finished")

	cancel()
	<-stopped
}

func TestRunOnLoop_GivesUpWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Nothing drives this scheduler, so only ctx can release the caller.
	assert.False(t, runOnLoop(ctx, scheduler.NewRealtime(), func() {}))
}
