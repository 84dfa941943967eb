// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package job

import (
	"context"
	"sync"
	"time"
)

// Job runs a maintenance task, such as pruning the forecast store, at a fixed interval.
// Runs never overlap: a tick that fires while the previous run is still busy is dropped.
type Job struct {
	name      string
	interval  time.Duration
	task      func(context.Context)
	immediate bool
}

// Option configures a Job.
type Option func(*Job)

// WithImmediateRun makes the job run once right after Start, before the first tick.
func WithImmediateRun() Option {
	return func(j *Job) {
		j.immediate = true
	}
}

// New creates a new Job with the given name, interval and task.
func New(name string, interval time.Duration, task func(context.Context), opts ...Option) *Job {
	job := &Job{
		name:     name,
		interval: interval,
		task:     task,
	}
	for _, opt := range opts {
		opt(job)
	}
	return job
}

// Name returns the name of the job.
func (j *Job) Name() string {
	return j.name
}

// Start executes the job until ctx is cancelled. It returns once a run still in progress at
// that point has finished.
func (j *Job) Start(ctx context.Context) {
	if j.task == nil || j.interval <= 0 {
		return
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	// 1-slot semaphore: "is a run in progress?"
	sem := make(chan struct{}, 1)
	var wg sync.WaitGroup
	defer wg.Wait()
	run := func() {
		select {
		case sem <- struct{}{}:
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() { <-sem }()
				runCtx, cancel := context.WithCancel(ctx)
				defer cancel()
				j.task(runCtx)
			}()
		default:
		}
	}

	if j.immediate {
		run()
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
