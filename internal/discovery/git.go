package discovery

import (
	"context"
	"fmt"
	"os"

	git "github.com/go-git/go-git/v5"

	"github.com/khimera-dev/khimera/internal/logger"
	"github.com/khimera-dev/khimera/internal/plugin"
)

// GitFinder discovers plugin bundles from manifests in a remote or local
// git repository. The repository is cloned shallowly into a scratch
// directory and scanned like any manifest root.
type GitFinder struct {
	Collection
	model   *plugin.Model
	url     string
	symbols Symbols
	logger  *logger.Logger
}

// NewGitFinder creates a finder cloning the repository at url.
func NewGitFinder(model *plugin.Model, url string, symbols Symbols, log *logger.Logger) *GitFinder {
	return &GitFinder{
		model:   model,
		url:     url,
		symbols: symbols,
		logger:  log,
	}
}

// Discover clones the repository and collects every manifest it contains.
// The clone directory is removed afterwards; discovered bundles keep only
// logical package locations, not clone paths.
func (f *GitFinder) Discover(ctx context.Context) error {
	dir, err := os.MkdirTemp("", "khimera-git-*")
	if err != nil {
		return fmt.Errorf("create clone directory: %w", err)
	}
	defer os.RemoveAll(dir)

	f.logger.Debug(fmt.Sprintf("cloning plugin repository %s", f.url))
	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:   f.url,
		Depth: 1,
	})
	if err != nil {
		return fmt.Errorf("clone %s: %w", f.url, err)
	}

	inner := NewManifestFinder(f.model, []string{dir}, f.symbols, f.logger)
	discoverErr := inner.Discover(ctx)
	for _, p := range inner.Plugins() {
		f.Store(p)
	}
	return discoverErr
}
