package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/userconsole/internal/actions"
	"github.com/dmitrijs2005/userconsole/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Empty(t *testing.T) {
	app := newTestApp(t, "")

	require.NoError(t, app.Session(context.Background()))

	assert.Contains(t, app.out.String(), "Session test-session (memory store)")
	assert.Contains(t, app.out.String(), "Nothing stored")
}

func TestSession_ListsStoredKeys(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()
	require.NoError(t, app.store.Set(ctx, common.AuthDataKey, []byte(`{"token":"t"}`)))
	require.NoError(t, app.List(ctx))
	app.out.Reset()

	require.NoError(t, app.Session(ctx))

	out := app.out.String()
	assert.Contains(t, out, common.AuthDataKey)
	assert.Contains(t, out, common.UserDataKey)
	assert.Less(t, strings.Index(out, common.AuthDataKey), strings.Index(out, common.UserDataKey))
}

func TestForget_WipesSession(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()
	require.NoError(t, app.store.Set(ctx, common.AuthDataKey, []byte(`{"token":"t"}`)))
	require.NoError(t, app.List(ctx))
	require.True(t, app.loaded)

	ran := false
	app.confirm.Request(actions.KindDelete, "user #1", func(context.Context) error {
		ran = true
		return nil
	})

	require.NoError(t, app.Forget(ctx))

	entries, err := app.store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, app.confirm.Pending())
	assert.False(t, ran)
	assert.False(t, app.loaded)
	assert.Empty(t, app.userName)
	assert.Contains(t, app.out.String(), "Session cleared")

	// the replacement cache loads from upstream again
	app.out.Reset()
	require.NoError(t, app.List(ctx))
	assert.Contains(t, app.out.String(), "Loading users...")
	assert.Len(t, app.cache.Users(), 12)
}

func TestClose_DropsUnansweredConfirmations(t *testing.T) {
	app := newTestApp(t, "")
	ran := false
	app.confirm.Request(actions.KindSave, "user #2", func(context.Context) error {
		ran = true
		return nil
	})

	app.close(context.Background())

	assert.Empty(t, app.confirm.Pending())
	assert.False(t, ran)
}
