// Package undo keeps a linear history of reversible commands.
package undo

import "fmt"

// Command is one reversible change to a target of type T.
type Command[T any] interface {
	Apply(target T) error
	Revert(target T) error
}

// Log is an undo/redo history. Commands before head are undoable; commands
// from head on were undone and can be redone until a new command is recorded.
type Log[T any] struct {
	actions []Command[T]
	head    int
}

// Record appends c as already applied and discards the redo history.
func (l *Log[T]) Record(c Command[T]) {
	clear(l.actions[l.head:])
	l.actions = append(l.actions[:l.head], c)
	l.head++
}

// Do applies c to target and records it when it succeeds.
func (l *Log[T]) Do(target T, c Command[T]) error {
	if err := c.Apply(target); err != nil {
		return err
	}
	l.Record(c)
	return nil
}

// Undo reverts the most recent command. It reports false, doing nothing,
// when there is nothing to undo.
func (l *Log[T]) Undo(target T) (bool, error) {
	if l.head == 0 {
		return false, nil
	}
	c := l.actions[l.head-1]
	if err := c.Revert(target); err != nil {
		return false, fmt.Errorf("undo: %w", err)
	}
	l.head--
	return true, nil
}

// Redo re-applies the most recently undone command. It reports false,
// doing nothing, when there is nothing to redo.
func (l *Log[T]) Redo(target T) (bool, error) {
	if l.head >= len(l.actions) {
		return false, nil
	}
	c := l.actions[l.head]
	if err := c.Apply(target); err != nil {
		return false, fmt.Errorf("redo: %w", err)
	}
	l.head++
	return true, nil
}

// CanUndo reports whether Undo would do anything.
func (l *Log[T]) CanUndo() bool { return l.head > 0 }

// CanRedo reports whether Redo would do anything.
func (l *Log[T]) CanRedo() bool { return l.head < len(l.actions) }

// Len returns the number of undoable commands.
func (l *Log[T]) Len() int { return l.head }

// Reset forgets all history.
func (l *Log[T]) Reset() {
	clear(l.actions)
	l.actions = l.actions[:0]
	l.head = 0
}
