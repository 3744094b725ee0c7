package manager

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esfpc/fpcheck/pkg/config"
	"esfpc/fpcheck/pkg/rules/source"
)

func commit(t *testing.T, repo *gogit.Repository, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)
	_, err = wt.Commit("update "+name, &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}

func gitRulesConfig(t *testing.T, upstream string) *config.RulesConfig {
	t.Helper()
	return &config.RulesConfig{
		Mode:       "git",
		Extensions: config.DefaultRulesExtensions,
		Git: config.GitConfig{
			Repository:   upstream,
			Branch:       "master",
			Path:         "rules",
			LocalPath:    filepath.Join(t.TempDir(), "clone"),
			PollSchedule: "@every 1h",
			Timeout:      30 * time.Second,
			Auth:         config.GitAuthConfig{Type: "none"},
		},
	}
}

func TestGitManagerPollReloads(t *testing.T) {
	upstream := t.TempDir()
	repo, err := gogit.PlainInit(upstream, false)
	require.NoError(t, err)
	commit(t, repo, upstream, "rules/aneki.yaml", anekiRules)

	m, eng := newManager(t, gitRulesConfig(t, upstream))
	require.NoError(t, m.Load(context.Background()))
	assert.Equal(t, 3, eng.RuleSet().Len())

	rev, ok := m.Registry().Current()
	require.True(t, ok)
	assert.Len(t, rev.Origin, 7)

	src, ok := m.Source().(*source.GitSource)
	require.True(t, ok)
	poller, err := NewGitPoller(src, "@every 1h", m.Reload, nil)
	require.NoError(t, err)

	// Nothing new upstream.
	poller.Poll(context.Background())
	assert.Len(t, m.Registry().History(), 1)

	commit(t, repo, upstream, "rules/fallback.yaml", fallbackRules)
	poller.Poll(context.Background())
	assert.Equal(t, 4, eng.RuleSet().Len())
	assert.Len(t, m.Registry().History(), 2)
}

func TestGitPollerSchedule(t *testing.T) {
	_, err := NewGitPoller(nil, "every minute", nil, nil)
	assert.Error(t, err)

	upstream := t.TempDir()
	repo, err := gogit.PlainInit(upstream, false)
	require.NoError(t, err)
	commit(t, repo, upstream, "rules/aneki.yaml", anekiRules)

	m, _ := newManager(t, gitRulesConfig(t, upstream))
	src := m.Source().(*source.GitSource)

	p, err := NewGitPoller(src, "@every 1h", m.Reload, nil)
	require.NoError(t, err)
	assert.True(t, p.NextRun().IsZero())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, p.Start(ctx))
	assert.Error(t, p.Start(ctx))

	next := p.NextRun()
	assert.WithinDuration(t, time.Now().Add(time.Hour), next, time.Minute)

	cancel()
	assert.Eventually(t, func() bool { return p.NextRun().IsZero() }, 2*time.Second, 10*time.Millisecond)
}
