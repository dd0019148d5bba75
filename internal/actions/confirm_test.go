package actions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmRunsOnce(t *testing.T) {
	c := NewConfirmer()
	ctx := context.Background()
	runs := 0

	tok := c.Request(KindSave, "user #3", func(context.Context) error {
		runs++
		return nil
	})
	assert.NotEmpty(t, tok)

	p, ok := c.lookup(tok)
	require.True(t, ok)
	assert.Equal(t, KindSave, p.Kind)
	assert.Equal(t, "user #3", p.Target)
	assert.Equal(t, 0, runs)

	require.NoError(t, c.Confirm(ctx, tok))
	assert.Equal(t, 1, runs)

	require.ErrorIs(t, c.Confirm(ctx, tok), ErrUnknownToken)
	assert.Equal(t, 1, runs)
	_, ok = c.lookup(tok)
	assert.False(t, ok)
}

func TestCancelNeverRuns(t *testing.T) {
	c := NewConfirmer()
	ran := false
	tok := c.Request(KindDelete, "user #2", func(context.Context) error {
		ran = true
		return nil
	})

	require.NoError(t, c.Cancel(tok))
	require.ErrorIs(t, c.Cancel(tok), ErrUnknownToken)
	require.ErrorIs(t, c.Confirm(context.Background(), tok), ErrUnknownToken)
	assert.False(t, ran)
}

func TestConfirmReturnsActionError(t *testing.T) {
	c := NewConfirmer()
	boom := errors.New("boom")
	tok := c.Request(KindSave, "user #1", func(context.Context) error { return boom })

	require.ErrorIs(t, c.Confirm(context.Background(), tok), boom)
	assert.Empty(t, c.Pending())
}

func TestConfirmNilAction(t *testing.T) {
	c := NewConfirmer()
	tok := c.Request(KindDiscard, "user #1", nil)
	require.NoError(t, c.Confirm(context.Background(), tok))
}

func TestPendingOrder(t *testing.T) {
	c := NewConfirmer()
	a := c.Request(KindSave, "a", nil)
	b := c.Request(KindDelete, "b", nil)
	d := c.Request(KindDiscard, "d", nil)

	require.NoError(t, c.Cancel(b))

	got := c.Pending()
	require.Len(t, got, 2)
	assert.Equal(t, a, got[0].Token)
	assert.Equal(t, d, got[1].Token)
	assert.NotEqual(t, a, d)
}

func TestUnknownToken(t *testing.T) {
	c := NewConfirmer()
	require.ErrorIs(t, c.Cancel("nope"), ErrUnknownToken)
	require.ErrorIs(t, c.Confirm(context.Background(), "nope"), ErrUnknownToken)
}
