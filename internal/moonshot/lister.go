package moonshot

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const listTimeout = 30 * time.Second

// SessionLister returns the raw JSON session listing.
type SessionLister interface {
	ListSessions(ctx context.Context) ([]byte, error)
}

// CLILister shells out to the session CLI.
type CLILister struct {
	Command string
	Limit   int
}

// ListSessions runs "<command> sessions list --limit N --json".
func (l CLILister) ListSessions(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	limit := l.Limit
	if limit <= 0 {
		limit = 100
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, l.Command, "sessions", "list", "--limit", strconv.Itoa(limit), "--json") //nolint:gosec // command comes from config
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("listing sessions: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
