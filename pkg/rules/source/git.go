package source

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"esfpc/fpcheck/pkg/rules/git"
)

// GitSource reads rule documents from a git clone.
type GitSource struct {
	repo   *git.Repository
	files  *FileSource
	logger *slog.Logger

	mu     sync.Mutex
	synced bool
}

// NewGitSource creates a source over repo. opts filter the files read from
// the clone's rule path.
func NewGitSource(repo *git.Repository, opts FileOptions) *GitSource {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &GitSource{
		repo:   repo,
		files:  NewFileSource(repo.RulesPath(), opts),
		logger: logger.With("component", "source.git"),
	}
}

// Sync fetches the latest commit of the configured branch.
func (s *GitSource) Sync(ctx context.Context) (*git.SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.repo.Sync(ctx)
	if err != nil {
		return nil, fmt.Errorf("git sync %s: %w", s.repo.URL(), err)
	}
	s.synced = true

	if res.HadChanges() {
		s.logger.Info("rule repository updated",
			"repository", s.repo.URL(),
			"from", short(res.FromSHA),
			"to", short(res.ToSHA),
			"changed_files", len(res.ChangedFiles),
		)
	}
	return res, nil
}

// Load reads the rule files of the clone, cloning first if needed. It does
// not pull; call Sync for that.
func (s *GitSource) Load(ctx context.Context) ([]Document, error) {
	s.mu.Lock()
	synced := s.synced
	s.mu.Unlock()

	if !synced {
		if _, err := s.Sync(ctx); err != nil {
			return nil, err
		}
	}
	return s.files.Load(ctx)
}

// Commit describes the checked out commit.
func (s *GitSource) Commit() (*git.CommitInfo, error) {
	return s.repo.CurrentCommit()
}

// Matches reports whether path names a rule file.
func (s *GitSource) Matches(path string) bool {
	return s.files.Matches(path)
}

func (s *GitSource) String() string { return "git:" + s.repo.URL() }

func short(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
