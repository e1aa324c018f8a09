package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/rechat/internal/adapters/file"
	"github.com/aretw0/rechat/pkg/domain"
	"github.com/aretw0/rechat/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.StateStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunStateStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_RecordOnDisk(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "alice", domain.ChannelState("#general")))

	data, err := os.ReadFile(filepath.Join(dir, "alice.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"channel","current_channel":"#general","current_user":null}`, string(data))

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_MalformedRecordDefaults(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bob.json"), []byte(`{"mode":"dm","current_user":"nobody"}`), 0644))

	state, err := store.Load(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.ModeCommand, state.Mode())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "carol.json"), []byte(`not json`), 0644))
	_, err = store.Load(context.Background(), "carol")
	assert.Error(t, err)
}

func TestFileStore_RejectsPathTraversal(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "..", "../escape", `a\b`} {
		err := store.Save(ctx, id, domain.CommandState())
		assert.ErrorIs(t, err, domain.ErrInvalidSessionID, id)
	}
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "nope"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
