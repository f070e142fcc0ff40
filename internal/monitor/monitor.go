// Package monitor runs the clipboard polling loop: read the clipboard,
// skip unchanged text, sanitize, write the result back, and notify the
// user. The platform clipboard itself is supplied by the caller.
package monitor

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/raaihank/clip-sentinel/internal/config"
	"github.com/raaihank/clip-sentinel/internal/logger"
	"github.com/raaihank/clip-sentinel/internal/rules"
	"github.com/raaihank/clip-sentinel/internal/sanitizer"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Monitor polls a clipboard and sanitizes its contents. The active rule
// set is an atomic snapshot: UpdateRules swaps the whole set, so a poll in
// flight keeps the set it started with and no locking is needed in the
// engine. The settings owner is the only writer.
type Monitor struct {
	clipboard Clipboard
	engine    *sanitizer.Engine
	notifier  Notifier
	logger    *logger.Logger
	limiter   *rate.Limiter
	interval  time.Duration

	enabled atomic.Bool
	rules   atomic.Pointer[rules.Set]

	// lastText is only touched from the Run goroutine.
	lastText string
}

// New creates a clipboard monitor. The notification limiter keeps a burst
// of clipboard changes from flooding the user with messages; sanitization
// itself is never throttled.
func New(cfg config.MonitorConfig, clip Clipboard, engine *sanitizer.Engine, set *rules.Set, notifier Notifier, log *logger.Logger) *Monitor {
	m := &Monitor{
		clipboard: clip,
		engine:    engine,
		notifier:  notifier,
		logger:    log,
		limiter:   rate.NewLimiter(rate.Every(cfg.NotifyInterval), cfg.NotifyBurst),
		interval:  cfg.PollInterval,
	}
	m.enabled.Store(true)
	m.rules.Store(set)
	return m
}

// UpdateRules replaces the active rule set. Subsequent polls use the new
// snapshot; a poll already in progress finishes with the old one.
func (m *Monitor) UpdateRules(set *rules.Set) {
	m.rules.Store(set)
	m.logger.Info("Rule set updated", zap.Int("rules", set.Len()))
}

// SetEnabled pauses or resumes sanitization without stopping the loop.
func (m *Monitor) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
	m.logger.Info("Monitor toggled", zap.Bool("enabled", enabled))
}

// Enabled reports whether sanitization is active.
func (m *Monitor) Enabled() bool {
	return m.enabled.Load()
}

// Run polls until ctx is cancelled. Clipboard errors are logged and the
// loop continues; the clipboard must keep flowing even when a single read
// or write fails.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("Clipboard monitor started", zap.Duration("poll_interval", m.interval))

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Clipboard monitor stopped")
			return ctx.Err()
		case <-ticker.C:
			m.poll()
		}
	}
}

func (m *Monitor) poll() {
	if !m.enabled.Load() {
		return
	}

	text, err := m.clipboard.Read()
	if err != nil {
		m.logger.Warn("Failed to read clipboard", zap.Error(err))
		return
	}
	// An empty read means no text on the clipboard and is skipped outright;
	// only non-empty, changed text is worth a sanitize pass.
	if text == "" || text == m.lastText {
		return
	}

	result := m.engine.Sanitize(text, m.rules.Load())
	if !result.Changed() {
		m.lastText = text
		return
	}

	if err := m.clipboard.Write(result.Output); err != nil {
		// lastText stays untouched: the sensitive text is not handled
		// until the write lands, so the next poll retries it.
		m.logger.Error("Failed to write clipboard", zap.Error(err))
		return
	}
	// Remember the rewritten text so the next poll doesn't re-process it.
	m.lastText = result.Output

	eventID := uuid.NewString()
	m.logger.LogSanitization(eventID, result.Counts, result.SkippedRules())

	if m.limiter.Allow() {
		m.notifier.Notify("Clipboard Sanitizer", "Clipboard sanitized")
	}
}
