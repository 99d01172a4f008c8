// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/folio/internal/metrics"
)

type countingCleaner struct {
	calls atomic.Int32
}

func (c *countingCleaner) CleanupImages() int {
	return int(c.calls.Add(1))
}

func TestImageJanitorService(t *testing.T) {
	var _ suture.Service = (*ImageJanitorService)(nil)

	cleaner := &countingCleaner{}
	svc := NewImageJanitorService(cleaner, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 75*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve returned %v", err)
	}
	if got := cleaner.calls.Load(); got < 3 {
		t.Errorf("cleanup ran %d times, want at least 3", got)
	}
	if svc.String() != "image-janitor" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestNewImageJanitorService_DefaultInterval(t *testing.T) {
	if got := NewImageJanitorService(&countingCleaner{}, 0).interval; got != 5*time.Minute {
		t.Errorf("interval = %v, want 5m", got)
	}
}

type fakeWarmer struct {
	err   error
	block bool
	calls atomic.Int32
}

func (f *fakeWarmer) Warm(ctx context.Context) error {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.err
}

func TestWarmupService(t *testing.T) {
	t.Run("success records metric and stops", func(t *testing.T) {
		before := testutil.ToFloat64(metrics.WarmupLastSuccess)
		warmer := &fakeWarmer{}

		err := NewWarmupService(warmer, time.Second).Serve(context.Background())
		if !errors.Is(err, suture.ErrDoNotRestart) {
			t.Errorf("Serve returned %v, want ErrDoNotRestart", err)
		}
		if after := testutil.ToFloat64(metrics.WarmupLastSuccess); after < before || after == 0 {
			t.Errorf("warmup timestamp = %v (before %v)", after, before)
		}
	})

	t.Run("failure is not restarted", func(t *testing.T) {
		warmer := &fakeWarmer{err: errors.New("notion down")}
		err := NewWarmupService(warmer, time.Second).Serve(context.Background())
		if !errors.Is(err, suture.ErrDoNotRestart) {
			t.Errorf("Serve returned %v, want ErrDoNotRestart", err)
		}
	})

	t.Run("timeout bounds the attempt", func(t *testing.T) {
		warmer := &fakeWarmer{block: true}
		start := time.Now()
		err := NewWarmupService(warmer, 20*time.Millisecond).Serve(context.Background())
		if !errors.Is(err, suture.ErrDoNotRestart) {
			t.Errorf("Serve returned %v", err)
		}
		if time.Since(start) > time.Second {
			t.Error("warmup ignored its timeout")
		}
	})

	t.Run("shutdown during warmup", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := NewWarmupService(&fakeWarmer{block: true}, time.Second).Serve(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	})
}

func TestWarmupService_RunsOnceUnderSupervisor(t *testing.T) {
	warmer := &fakeWarmer{}
	sup := suture.New("test-sup", suture.Spec{
		FailureBackoff: 10 * time.Millisecond,
		Timeout:        time.Second,
	})
	sup.Add(NewWarmupService(warmer, time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	<-sup.ServeBackground(ctx)

	if got := warmer.calls.Load(); got != 1 {
		t.Errorf("Warm called %d times, want 1", got)
	}
}
