package editor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vinodismyname/mdsheet/core/parser"
)

type fakeGate struct {
	acquired int
	released int
	denyErr  error
}

func (g *fakeGate) AcquireDocument(ctx context.Context) error {
	if g.denyErr != nil {
		return g.denyErr
	}
	g.acquired++
	return nil
}

func (g *fakeGate) ReleaseDocument() { g.released++ }

type stubValidator struct {
	canonical string
	err       error
}

func (v stubValidator) ValidateOpenPath(path string) (string, error) {
	if v.err != nil {
		return "", v.err
	}
	if v.canonical != "" {
		return v.canonical, nil
	}
	return path, nil
}

func newTestManager(gate DocumentGate, clock func() time.Time) *Manager {
	return NewManager(time.Hour, time.Hour, gate, clock, nil, parser.DefaultSchema())
}

func TestAdopt_RegistersHandleAndAcquiresGate(t *testing.T) {
	gate := &fakeGate{}
	m := newTestManager(gate, nil)
	c := NewContext(doc, parser.DefaultSchema())

	id, err := m.Adopt(context.Background(), c)
	require.NoError(t, err)
	require.Equal(t, 1, gate.acquired)
	require.Equal(t, 1, m.Count())

	h, ok := m.Get(id)
	require.True(t, ok)
	require.Same(t, c, h.Ctx)
}

func TestWithWrite_MutatesUnderlyingContext(t *testing.T) {
	m := newTestManager(nil, nil)
	c := NewContext(doc, parser.DefaultSchema())
	id, err := m.Adopt(context.Background(), c)
	require.NoError(t, err)

	err = m.WithWrite(id, func(ctx *Context) error {
		res := ctx.InsertColumn(0, 0, 1, "NEW")
		if res.Error != "" {
			return errors.New(res.Error)
		}
		return nil
	})
	require.NoError(t, err)
	require.Contains(t, c.Text(), "NEW")
}

func TestWithRead_UnknownHandleErrors(t *testing.T) {
	m := newTestManager(nil, nil)
	err := m.WithRead("missing", func(*Context) error { return nil })
	require.ErrorIs(t, err, ErrHandleNotFound)
}

func TestCloseHandle_RemovesAndReleasesGate(t *testing.T) {
	gate := &fakeGate{}
	m := newTestManager(gate, nil)
	c := NewContext(doc, parser.DefaultSchema())
	id, err := m.Adopt(context.Background(), c)
	require.NoError(t, err)

	require.NoError(t, m.CloseHandle(context.Background(), id))
	require.Equal(t, 1, gate.released)
	require.Equal(t, 0, m.Count())

	require.ErrorIs(t, m.CloseHandle(context.Background(), id), ErrHandleNotFound)
}

func TestEvictExpired_RemovesOnlyPastTTL(t *testing.T) {
	gate := &fakeGate{}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	m := newTestManager(gate, clock)

	c := NewContext(doc, parser.DefaultSchema())
	id, err := m.Adopt(context.Background(), c)
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	m.EvictExpired()

	require.Equal(t, 0, m.Count())
	require.Equal(t, 1, gate.released)
	_, ok := m.Get(id)
	require.False(t, ok)
}

func TestOpen_ReadsFileAndValidatesExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.md")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	m := newTestManager(nil, nil)
	id, err := m.Open(context.Background(), path)
	require.NoError(t, err)

	h, ok := m.Get(id)
	require.True(t, ok)
	require.Equal(t, path, h.Path)
	require.Len(t, h.Ctx.Workbook().Sheets, 1)
}

func TestOpen_RejectsUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	m := newTestManager(nil, nil)
	_, err := m.Open(context.Background(), path)
	require.Error(t, err)
}

func TestOpen_GateDenialPropagatesAndDoesNotRegisterHandle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.md")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	gate := &fakeGate{denyErr: context.DeadlineExceeded}
	m := newTestManager(gate, nil)
	_, err := m.Open(context.Background(), path)
	require.Error(t, err)
	require.Equal(t, 0, m.Count())
}
