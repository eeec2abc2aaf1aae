package vicalc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newSession(t, map[string]string{"A1": "10", "B1": "=A1/4", "C3": "hello"})
	require.NoError(t, s.SetColWidth(1, 18))

	var buf bytes.Buffer
	require.NoError(t, s.Save().Encode(&buf))
	assert.Contains(t, buf.String(), `"version": "1.0"`)
	assert.Contains(t, buf.String(), `"B": 18`)

	doc, err := DecodeDocument(&buf)
	require.NoError(t, err)
	loaded := New()
	require.NoError(t, loaded.Load(doc))

	assert.Equal(t, "test", loaded.Name())
	assert.Equal(t, contents(s), contents(loaded))
	assert.Equal(t, "2.5", loaded.Display(at("B1")))
	assert.Equal(t, 18, loaded.Sheet().ColWidth(1))
	assert.False(t, loaded.CanUndo())
}

func TestDecodeDocument_ObjectCells(t *testing.T) {
	src := `{
		"version": "1.0",
		"name": "legacy",
		"cells": {
			"A1": {"value": "4"},
			"A2": {"value": "8", "formula": "=A1*2"}
		}
	}`
	doc, err := DecodeDocument(strings.NewReader(src))
	require.NoError(t, err)
	s := New()
	require.NoError(t, s.Load(doc))
	assert.Equal(t, "=A1*2", s.Raw(at("A2")))
	assert.Equal(t, "8", s.Display(at("A2")))
}

func TestLoad_Rejects(t *testing.T) {
	s := newSession(t, map[string]string{"A1": "keep"})

	err := s.Load(&Document{Version: "2.0"})
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	err = s.Load(&Document{Version: "1.0", Cells: map[string]RawContent{"1A": "x"}})
	assert.Error(t, err)

	err = s.Load(&Document{Version: "1.0", ColWidths: map[string]int{"A1": 5}})
	assert.Error(t, err)

	assert.Equal(t, "keep", s.Raw(at("A1")))
}

func TestDecodeDocument_Invalid(t *testing.T) {
	_, err := DecodeDocument(strings.NewReader(`{"cells": {"A1": 5}}`))
	assert.Error(t, err)
}
