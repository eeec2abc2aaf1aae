package undo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct{ n int }

type add int

func (a add) Apply(c *counter) error {
	c.n += int(a)
	return nil
}

func (a add) Revert(c *counter) error {
	c.n -= int(a)
	return nil
}

type failing struct{}

func (failing) Apply(*counter) error { return errors.New("boom") }
func (failing) Revert(*counter) error { return errors.New("boom") }

func TestLog_UndoRedo(t *testing.T) {
	var l Log[*counter]
	c := &counter{}
	require.NoError(t, l.Do(c, add(2)))
	require.NoError(t, l.Do(c, add(3)))
	assert.Equal(t, 5, c.n)

	ok, err := l.Undo(c)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, c.n)

	ok, err = l.Redo(c)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5, c.n)
}

func TestLog_EmptyIsNoOp(t *testing.T) {
	var l Log[*counter]
	c := &counter{n: 7}
	ok, err := l.Undo(c)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = l.Redo(c)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 7, c.n)
}

func TestLog_RecordClearsRedo(t *testing.T) {
	var l Log[*counter]
	c := &counter{}
	require.NoError(t, l.Do(c, add(1)))
	require.NoError(t, l.Do(c, add(10)))
	_, err := l.Undo(c)
	require.NoError(t, err)
	assert.True(t, l.CanRedo())

	require.NoError(t, l.Do(c, add(100)))
	assert.False(t, l.CanRedo())
	assert.Equal(t, 101, c.n)
	assert.Equal(t, 2, l.Len())

	ok, err := l.Redo(c)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLog_FailedApplyIsNotRecorded(t *testing.T) {
	var l Log[*counter]
	c := &counter{}
	assert.Error(t, l.Do(c, failing{}))
	assert.False(t, l.CanUndo())
}

func TestLog_Reset(t *testing.T) {
	var l Log[*counter]
	c := &counter{}
	require.NoError(t, l.Do(c, add(1)))
	l.Reset()
	assert.False(t, l.CanUndo())
	assert.False(t, l.CanRedo())
}
