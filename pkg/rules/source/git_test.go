package source

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
	"esfpc/fpcheck/pkg/rules/git"
)

func commitRules(t *testing.T, repo *gogit.Repository, dir, name, content string) {
	t.Helper()
	writeFile(t, dir, name, content)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)
	_, err = wt.Commit("update "+name, &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}

func TestGitSource(t *testing.T) {
	upstream := t.TempDir()
	repo, err := gogit.PlainInit(upstream, false)
	require.NoError(t, err)
	commitRules(t, repo, upstream, "rules/eddf.yaml", aneki)

	clone, err := git.NewRepository(&config.GitConfig{
		Repository: upstream,
		Branch:     "master",
		Path:       "rules",
		LocalPath:  filepath.Join(t.TempDir(), "clone"),
		Timeout:    30 * time.Second,
	})
	require.NoError(t, err)

	src := NewGitSource(clone, FileOptions{})
	ctx := context.Background()

	docs, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"eddf.yaml"}, docNames(docs))

	commitRules(t, repo, upstream, "rules/eddm.yaml", "rules: []\n")

	docs, err = src.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1, "Load must not pull")

	res, err := src.Sync(ctx)
	require.NoError(t, err)
	assert.True(t, res.HadChanges())

	docs, err = src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"eddf.yaml", "eddm.yaml"}, docNames(docs))

	commit, err := src.Commit()
	require.NoError(t, err)
	assert.Equal(t, res.ToSHA, commit.SHA)
	assert.Equal(t, "git:"+upstream, src.String())

	_, err = os.Stat(filepath.Join(clone.RulesPath(), "eddm.yaml"))
	assert.NoError(t, err)
}
