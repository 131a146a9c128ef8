// Package notify delivers report summaries to a chat target or the desktop.
package notify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/theirongolddev/tokenledger/internal/config"
	"github.com/theirongolddev/tokenledger/internal/model"
	"github.com/theirongolddev/tokenledger/internal/report"
)

// ErrNotConfigured is returned when a notifier lacks a required setting.
var ErrNotConfigured = errors.New("notify: not configured")

// ChannelDesktop selects the desktop notifier instead of the messaging CLI.
const ChannelDesktop = "desktop"

const (
	sendTimeout  = 30 * time.Second
	desktopTitle = "Token usage"
)

// Notifier sends a text message somewhere.
type Notifier interface {
	Name() string
	Send(ctx context.Context, message string) error
}

// Runner executes an external command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput() //nolint:gosec // command comes from config
}

// Messenger sends through "<command> message send".
type Messenger struct {
	Command string
	Channel string
	Target  string
	Run     Runner
}

// Name returns the channel name.
func (m *Messenger) Name() string { return m.Channel }

// Send delivers message to the configured channel and target.
func (m *Messenger) Send(ctx context.Context, message string) error {
	if m.Command == "" || m.Channel == "" {
		return ErrNotConfigured
	}
	run := m.Run
	if run == nil {
		run = ExecRunner
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	out, err := run(ctx, m.Command,
		"message", "send",
		"--channel", m.Channel,
		"--target", m.Target,
		"--message", message,
	)
	if err != nil {
		return fmt.Errorf("sending via %s: %w: %s", m.Command, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Desktop shows a desktop notification.
type Desktop struct {
	Title string
	// Notify defaults to a beeep notification without an icon.
	Notify func(title, message string) error
}

// Name returns "desktop".
func (d *Desktop) Name() string { return ChannelDesktop }

// Send shows message in a desktop notification.
func (d *Desktop) Send(_ context.Context, message string) error {
	notifyFn := d.Notify
	if notifyFn == nil {
		notifyFn = func(title, message string) error {
			return beeep.Notify(title, message, "")
		}
	}
	title := d.Title
	if title == "" {
		title = desktopTitle
	}
	if err := notifyFn(title, message); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}

// New picks a notifier for the configured channel.
func New(cfg config.NotifyConfig) Notifier {
	if cfg.Channel == ChannelDesktop {
		return &Desktop{}
	}
	return &Messenger{
		Command: cfg.Command,
		Channel: cfg.Channel,
		Target:  cfg.Target,
	}
}

// BuildMessage renders today's report, a blank line, then yesterday's.
func BuildMessage(series model.Series, now time.Time) string {
	yesterday, today := report.Labels(now)
	t, okT := series[today]
	y, okY := series[yesterday]
	if !okT || !okY {
		return "Token usage data not available for both days."
	}

	lines := report.FormatDay("Today", t, report.DayOptions{Now: &now})
	lines = append(lines, "")
	lines = append(lines, report.FormatDay("Yesterday", y, report.DayOptions{})...)
	return strings.Join(lines, "\n")
}

// FailureMessage is sent when the report run fails.
func FailureMessage(err error) string {
	return "Token usage report failed:\n" + strings.TrimSpace(err.Error())
}
