// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package job

import (
	"context"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"
)

type testType struct {
	count     int
	completed bool
}

func TestNew(t *testing.T) {
	job := New("test", time.Millisecond*100, func(context.Context) {})
	if job == nil {
		t.Fatal("expected job to be non-nil")
	}
	if job.Name() != "test" {
		t.Errorf("expected job name to be test, got %s", job.Name())
	}
}

func TestJob_Start(t *testing.T) {
	t.Run("job succeeds", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			tester := &testType{}

			ctx, cancel := context.WithCancel(t.Context())
			context.AfterFunc(ctx, func() {
				tester.completed = true
			})

			testJob := New("test", time.Millisecond*100, tester.testFunc)
			go testJob.Start(ctx)

			synctest.Wait()
			if tester.completed {
				t.Fatal("expected job to not be completed before context was cancelled")
			}

			cancel()
			synctest.Wait()
			if !tester.completed {
				t.Fatal("expected job to be completed after context was cancelled")
			}
		})
	})
	t.Run("job ticker executes", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(t.Context(), time.Millisecond*100)
			tester := &testType{}

			testJob := New("test", time.Millisecond*10, tester.testFunc)
			testJob.Start(ctx)

			synctest.Wait()
			cancel()
			if tester.count != 5 {
				t.Errorf("expected job to execute 5 times, got %d", tester.count)
			}
		})
	})
	t.Run("immediate job runs before the first tick", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			var runs atomic.Int32
			ctx, cancel := context.WithCancel(t.Context())
			defer cancel()

			testJob := New("test", time.Hour, func(context.Context) { runs.Add(1) }, WithImmediateRun())
			go testJob.Start(ctx)

			synctest.Wait()
			if runs.Load() != 1 {
				t.Errorf("expected job to run once, got %d", runs.Load())
			}
		})
	})
	t.Run("overlapping ticks are skipped", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			var runs atomic.Int32
			ctx, cancel := context.WithTimeout(t.Context(), time.Millisecond*55)
			defer cancel()

			slow := func(context.Context) {
				runs.Add(1)
				time.Sleep(time.Millisecond * 25)
			}
			New("slow", time.Millisecond*10, slow).Start(ctx)

			synctest.Wait()
			// ticks at 10 and 40 run, 20 and 30 and 50 hit a busy job
			if runs.Load() != 2 {
				t.Errorf("expected 2 runs, got %d", runs.Load())
			}
		})
	})
	t.Run("start waits for a run in progress", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			var finished atomic.Bool
			ctx, cancel := context.WithTimeout(t.Context(), time.Millisecond*15)
			defer cancel()

			slow := func(context.Context) {
				time.Sleep(time.Millisecond * 30)
				finished.Store(true)
			}
			New("slow", time.Millisecond*10, slow).Start(ctx)

			if !finished.Load() {
				t.Error("expected the run to finish before Start returned")
			}
		})
	})
	t.Run("nil job returns", func(t *testing.T) {
		tester := New("nil", time.Millisecond*100, nil)
		tester.Start(t.Context())
	})
}

func (t *testType) testFunc(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	default:
		if t.count >= 5 {
			return
		}
		t.count++
	}
}
