package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/fontvolt/core"
	"github.com/npillmayer/fontvolt/core/font/opentype/ot"
	"golang.org/x/image/font/gofont/goregular"
)

// loadFont loads a font, given either as a path to a font file, as the name
// of a system font, or as "goregular" for the packaged Go Regular font.
func loadFont(name string) (*ot.Font, error) {
	if name == "" {
		return nil, core.Error(core.EMISSING, "no font given")
	}
	var data []byte
	var err error
	if normalizeFontname(name) == "goregular" {
		tracer().Debugf("using packaged font Go Regular")
		data = goregular.TTF
	} else if _, err = os.Stat(name); err == nil {
		data, err = os.ReadFile(name)
	} else {
		var fpath string
		if fpath, err = findfont.Find(name); err == nil && fpath != "" { // try to find as system font
			tracer().Debugf("%s is a system font at %s", name, fpath)
			data, err = os.ReadFile(fpath)
		}
	}
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot load font %s", name)
	}
	otf, err := ot.Parse(data)
	if err != nil {
		tracer().Errorf("cannot decode font %s: %s", name, err)
		return nil, err
	}
	tracer().Infof("parsed OpenType font %s with %d glyphs", name, otf.NumGlyphs())
	return otf, nil
}

// loadGlyphList creates a font without tables from a glyph order file,
// holding one glyph name per line. Empty lines and lines starting with '#'
// are skipped.
func loadGlyphList(path string) (*ot.Font, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open glyph list %s", path)
	}
	defer f.Close()
	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read glyph list %s", path)
	}
	tracer().Infof("glyph list %s has %d glyphs", path, len(names))
	return ot.NewFont(names), nil
}

func normalizeFontname(name string) string {
	name = strings.ToLower(name)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(name)
}
