package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/fontvolt/core/font/opentype/ot"
	"github.com/npillmayer/fontvolt/volt/builder"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPackagedFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.volt")
	defer teardown()
	//
	otf, err := loadFont("Go-Regular")
	require.NoError(t, err)
	assert.Greater(t, otf.NumGlyphs(), 100)
	_, err = loadFont("")
	assert.Error(t, err)
}

func TestGlyphListAndBuild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.volt")
	defer teardown()
	//
	dir := t.TempDir()
	glyphs := filepath.Join(dir, "glyphs.txt")
	require.NoError(t, os.WriteFile(glyphs, []byte("# glyph order\n.notdef\nA\n\nacute\ngrave\n"), 0644))
	project := filepath.Join(dir, "test.vtp")
	require.NoError(t, os.WriteFile(project, []byte(`
DEF_GLYPH "A" ID 1 TYPE BASE END_GLYPH
DEF_GLYPH "acute" ID 2 TYPE MARK END_GLYPH
DEF_ATTACH "A" POINTS 2 1 END_ATTACH
DEF_MARK_GLYPH_SET 4 GLYPH "grave" GLYPH "acute" END_MARK_GLYPH_SET
END`), 0644))
	otf, err := loadGlyphList(glyphs)
	require.NoError(t, err)
	assert.Equal(t, []string{".notdef", "A", "acute", "grave"}, otf.GlyphOrder())
	//
	b, err := buildGDEF(otf, project)
	require.NoError(t, err)
	require.True(t, otf.HasTable(builder.GDEF))
	msg, err := verify(otf)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg, "GDEF table version 1.2"), msg)
	rows := markSetRows(b.Facts())
	assert.Equal(t, [][]string{{"Index", "Id", "Glyphs"}, {"0", "4", "acute grave"}}, [][]string(rows))
	//
	_, err = buildGDEF(otf, filepath.Join(dir, "missing.vtp"))
	assert.Error(t, err)
}

func TestCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.volt")
	defer teardown()
	//
	cmd, err := parseCommand("Class  fi")
	require.NoError(t, err)
	assert.Equal(t, Command{code: CLASS, arg: "fi"}, cmd)
	_, err = parseCommand("carets")
	assert.Error(t, err, "expected carets without glyph to fail")
	_, err = parseCommand("frobnicate x")
	assert.Error(t, err)
	//
	intp := &Intp{font: ot.NewFont([]string{".notdef", "A"})}
	quit, err := intp.execute(Command{code: QUIT})
	assert.NoError(t, err)
	assert.True(t, quit)
	_, err = intp.execute(Command{code: CLASS, arg: "A"})
	assert.Error(t, err, "expected command to fail without VOLT build")
}
