package repositories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *models.Document {
	doc := models.NewDocument()
	acc := doc.Account("42")
	acc.Coins = 75
	acc.Streak = 2
	acc.LastCheckin = "2024-05-02"
	acc.Items[models.ItemShoutout] = 2
	doc.Teams["bug-hunters"] = &models.Team{ID: "bug-hunters", Name: "Bug Hunters", CreatedBy: "42", Members: []string{"42"}}
	for _, item := range models.DefaultShop("Golden Dev", 24) {
		doc.Shop[item.ID] = item
	}
	return doc
}

func openBackends(t *testing.T) map[string]DocumentRepository {
	dir := t.TempDir()

	jsonRepo, err := NewJSONRepository(filepath.Join(dir, "data.json"))
	require.NoError(t, err)

	sqliteRepo, err := OpenSQLite(filepath.Join(dir, "goblin.db"), "main")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteRepo.Close() })

	return map[string]DocumentRepository{
		"json":   jsonRepo,
		"sqlite": sqliteRepo,
		"memory": NewMemoryRepository(),
	}
}

func TestRepositories_LoadMissing(t *testing.T) {
	for name, repo := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Load(context.Background())
			assert.ErrorIs(t, err, ErrNoDocument)
		})
	}
}

func TestRepositories_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	for name, repo := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			doc := sampleDocument()
			require.NoError(t, repo.Save(ctx, doc))

			doc.Account("42").Coins = 10
			delete(doc.Teams, "bug-hunters")
			require.NoError(t, repo.Save(ctx, doc))

			got, err := repo.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, 10, got.Users["42"].Coins)
			assert.Equal(t, 2, got.Users["42"].Items[models.ItemShoutout])
			assert.Empty(t, got.Teams)
			assert.Len(t, got.Shop, 4)
			assert.Equal(t, models.UsableItem{Command: models.UsableRoast}, got.Shop[models.ItemRoast].Kind)
		})
	}
}

func TestJSONRepository_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo, err := NewJSONRepository(path)
	require.NoError(t, err)

	_, err = repo.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedDocument))

	var repoErr *RepositoryError
	assert.True(t, errors.As(err, &repoErr))
	assert.Equal(t, "load", repoErr.Operation)
}

func TestJSONRepository_NoTempLeftBehind(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewJSONRepository(filepath.Join(dir, "data.json"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), sampleDocument()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data.json", entries[0].Name())
}

func TestNewJSONRepository_EmptyPath(t *testing.T) {
	_, err := NewJSONRepository("  ")
	assert.Error(t, err)
}
