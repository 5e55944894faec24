package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"face-synth/internal/synth"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWritesDataAndManifest(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	code := run(context.Background(), []string{
		"-iterations", "1",
		"-output_folder", out,
		"-seed", "7",
	}, zerolog.Nop())
	require.Equal(t, exitOK, code)

	// 80 degrees at 8 degrees per step.
	assert.FileExists(t, filepath.Join(out, "image_000000_000.json"))
	assert.FileExists(t, filepath.Join(out, "image_000000_009.json"))
	assert.NoFileExists(t, filepath.Join(out, "image_000000_010.json"))
	assert.NoFileExists(t, filepath.Join(out, "image_000000_000.webp"))

	data, err := os.ReadFile(filepath.Join(out, "manifest.json"))
	require.NoError(t, err)
	var entries []synth.ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Len(t, entries, 10)
}

func TestRunZeroIterations(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	code := run(context.Background(), []string{"-iterations", "0", "-output_folder", out}, zerolog.Nop())
	require.Equal(t, exitOK, code)

	data, err := os.ReadFile(filepath.Join(out, "manifest.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestRunNothingSaved(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	code := run(context.Background(), []string{"-iterations", "1", "-save_data", "false", "-output_folder", out}, zerolog.Nop())
	require.Equal(t, exitOK, code)
	assert.NoDirExists(t, out)
}

func TestRunInvalidStickers(t *testing.T) {
	dir := t.TempDir()
	// Right-handed layout with the top sticker pushed below the triangle.
	file := filepath.Join(dir, "stickers.txt")
	require.NoError(t, os.WriteFile(file, []byte(
		"lefteye -2.44 5.69 0\n"+
			"nosetip -0.13 7.34 -1.21\n"+
			"righteye 2.2 6.12 0.02\n"+
			"left_triangle -3.5 9.75 4.66\n"+
			"middle_triangle 0.36 9.33 6.68\n"+
			"right_triangle 3.77 9.74 4.87\n"+
			"top 0.53 0 -10.98\n"), 0o644))

	code := run(context.Background(), []string{"-input_file", file, "-output_folder", filepath.Join(dir, "out")}, zerolog.Nop())
	assert.Equal(t, exitFailure, code)
	assert.NoDirExists(t, filepath.Join(dir, "out"))
}

func TestRunStickerFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "stickers.txt")
	require.NoError(t, os.WriteFile(file, []byte(
		"lefteye -2.44 5.69 0\n"+
			"nosetip -0.13 7.34 -1.21\n"+
			"righteye 2.2 6.12 0.02\n"+
			"left_triangle -3.5 9.75 4.66\n"+
			"middle_triangle 0.36 9.33 6.68\n"+
			"right_triangle 3.77 9.74 4.87\n"+
			"top 0.53 0 10.98\n"), 0o644))

	code := run(context.Background(), []string{"-input_file", file, "-iterations", "0", "-save_data", "false"}, zerolog.Nop())
	assert.Equal(t, exitOK, code)
}

func TestRunMissingStickerFile(t *testing.T) {
	dir := t.TempDir()
	code := run(context.Background(), []string{"-input_file", filepath.Join(dir, "nope.txt")}, zerolog.Nop())
	assert.Equal(t, exitFailure, code)
}

func TestRunBadConfigFile(t *testing.T) {
	dir := t.TempDir()
	code := run(context.Background(), []string{"-config", filepath.Join(dir, "missing.yaml")}, zerolog.Nop())
	assert.Equal(t, exitFailure, code)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := filepath.Join(t.TempDir(), "out")
	code := run(ctx, []string{"-iterations", "3", "-output_folder", out}, zerolog.Nop())
	assert.Equal(t, exitInterrupted, code)
}
