package history

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path"
	"strings"
)

// GitProvider reads history from a local git checkout.
type GitProvider struct {
	repoDir  string
	docsPath string
	binary   string
}

// NewGitProvider creates a provider for the repository at repoDir.
// docsPath is the documents directory relative to the repository root.
func NewGitProvider(repoDir, docsPath string) *GitProvider {
	if repoDir == "" {
		repoDir = "."
	}

	return &GitProvider{
		repoDir:  repoDir,
		docsPath: docsPath,
		binary:   "git",
	}
}

// History implements Provider by running
// git log --follow --format=%aI -- <docsPath>/<id>.
func (g *GitProvider) History(ctx context.Context, id string) ([]string, error) {
	target := path.Join(g.docsPath, id)

	//nolint:gosec // arguments are passed directly, never through a shell
	cmd := exec.CommandContext(ctx, g.binary, "-C", g.repoDir, "log", "--follow", "--format=%aI", "--", target)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log %s: %w: %s", target, err, strings.TrimSpace(stderr.String()))
	}

	var stamps []string

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			stamps = append(stamps, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read git output: %w", err)
	}

	// git log lists newest first.
	reverse(stamps)

	return stamps, nil
}
