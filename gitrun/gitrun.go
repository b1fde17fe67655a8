// Package gitrun shells out to the git binary for clone-target modules.
// URLs are validated before ever reaching the command line.
package gitrun

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// allowedProtocols are the URL schemes a clone target may use.
var allowedProtocols = []string{"https://", "git://", "ssh://"}

// Git runs clone operations through the system git binary.
type Git struct {
	binary string
	log    *slog.Logger
}

// New builds a Git runner. binary defaults to "git"; logger defaults to
// slog.Default().
func New(binary string, logger *slog.Logger) *Git {
	if binary == "" {
		binary = "git"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Git{binary: binary, log: logger}
}

// Clone fetches url into dest.
func (g *Git) Clone(ctx context.Context, url, dest string) error {
	if err := ValidateURL(url); err != nil {
		return err
	}

	g.log.Debug("running git clone", "url", url, "dest", dest)
	cmd := exec.CommandContext(ctx, g.binary, "clone", url, dest)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("git clone %s: %w: %s", url, err, msg)
		}
		return fmt.Errorf("git clone %s: %w", url, err)
	}
	return nil
}

// ValidateURL rejects clone URLs that could smuggle options or paths
// into the git invocation. Accepted forms are the allowed protocol
// schemes and the git@host:path SSH shorthand.
func ValidateURL(url string) error {
	if url == "" {
		return fmt.Errorf("clone URL cannot be empty")
	}
	if strings.HasPrefix(url, "-") {
		return fmt.Errorf("clone URL cannot start with a dash: %s", url)
	}
	if strings.Contains(url, "..") {
		return fmt.Errorf("clone URL cannot contain path traversal: %s", url)
	}

	for _, proto := range allowedProtocols {
		if strings.HasPrefix(url, proto) {
			return nil
		}
	}
	if strings.HasPrefix(url, "git@") && strings.Contains(url, ":") {
		return nil
	}
	return fmt.Errorf("unsupported clone URL (use https, git, ssh, or git@host:path): %s", url)
}
