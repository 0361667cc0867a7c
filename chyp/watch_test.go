package chyp

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestWatchROM(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "game.ch8")
	assert.NoError(t, os.WriteFile(name, []byte{0x12, 0x00}, 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	roms, err := WatchROM(ctx, log.NewTestLogger(t), name)
	assert.NoError(t, err)

	// changes to other files in the directory are ignored
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))
	assert.NoError(t, os.WriteFile(name, []byte{0x60, 0x01, 0x12, 0x02}, 0o644))

	select {
	case rom := <-roms:
		assert.Equal(t, []byte{0x60, 0x01, 0x12, 0x02}, rom)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after ROM change")
	}
}

func TestWatchROMMissingDirectory(t *testing.T) {
	_, err := WatchROM(context.Background(), log.NewTestLogger(t), filepath.Join(t.TempDir(), "nope", "game.ch8"))
	assert.True(t, err != nil)
}
