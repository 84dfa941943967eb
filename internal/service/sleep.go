// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/wneessen/bestbikeday/internal/logger"
)

const (
	logindInterface   = "org.freedesktop.login1.Manager"
	logindSleepMember = "PrepareForSleep"

	resumeDebounce   = 2 * time.Second
	signalBufferSize = 8

	busRetryDelay      = 5 * time.Second
	networkWakeupDelay = 10 * time.Second
)

// resumeWatcher calls onResume when logind reports that the system woke up from suspend.
type resumeWatcher struct {
	logger   *logger.Logger
	onResume func(context.Context)
	wakeup   time.Duration

	mu         sync.Mutex
	lastResume time.Time
}

func newResumeWatcher(log *logger.Logger, onResume func(context.Context)) *resumeWatcher {
	return &resumeWatcher{logger: log, onResume: onResume, wakeup: networkWakeupDelay}
}

// monitorSleepResume refreshes the forecast after every resume from suspend until ctx is cancelled.
func (s *Service) monitorSleepResume(ctx context.Context) {
	newResumeWatcher(s.logger, func(ctx context.Context) {
		s.logger.Debug("resumed from sleep, refreshing forecast")
		s.refreshJob(ctx)
	}).watch(ctx)
}

// watch keeps a subscription to the logind sleep signal, reconnecting to the system bus when the
// connection drops.
func (w *resumeWatcher) watch(ctx context.Context) {
	for {
		conn, err := dbus.ConnectSystemBus()
		if err == nil {
			err = w.subscribe(ctx, conn)
			if closeErr := conn.Close(); closeErr != nil {
				w.logger.Debug("failed to close system bus connection", logger.Err(closeErr))
			}
		}
		if err != nil {
			w.logger.Debug("system bus unavailable, retrying", logger.Err(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(busRetryDelay):
		}
	}
}

// subscribe handles sleep signals on conn until the connection or ctx is closed.
func (w *resumeWatcher) subscribe(ctx context.Context, conn *dbus.Conn) error {
	if err := conn.AddMatchSignal(dbus.WithMatchInterface(logindInterface),
		dbus.WithMatchMember(logindSleepMember),
	); err != nil {
		return err
	}

	sigCh := make(chan *dbus.Signal, signalBufferSize)
	conn.Signal(sigCh)
	defer conn.RemoveSignal(sigCh)
	w.logger.Debug("subscribed to dbus signal", slog.String("interface", logindInterface),
		slog.String("member", logindSleepMember))

	for {
		select {
		case <-ctx.Done():
			return nil
		case sgn, ok := <-sigCh:
			if !ok {
				return nil
			}
			if isResume(sgn) {
				w.resumed(ctx, time.Now())
			}
		}
	}
}

// resumed runs onResume unless another resume was handled within the debounce window.
func (w *resumeWatcher) resumed(ctx context.Context, now time.Time) bool {
	w.mu.Lock()
	if !w.lastResume.IsZero() && now.Sub(w.lastResume) < resumeDebounce {
		w.mu.Unlock()
		return false
	}
	w.lastResume = now
	w.mu.Unlock()

	select {
	case <-ctx.Done():
		return false
	case <-time.After(w.wakeup):
	}
	w.onResume(ctx)
	return true
}

// isResume reports whether sgn is a PrepareForSleep(false) signal.
func isResume(sgn *dbus.Signal) bool {
	if sgn == nil || len(sgn.Body) != 1 {
		return false
	}
	sleeping, ok := sgn.Body[0].(bool)
	return ok && !sleeping
}
