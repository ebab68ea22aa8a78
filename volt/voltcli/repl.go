package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fontvolt/core"
	"github.com/npillmayer/fontvolt/core/font/opentype/ot"
	"github.com/npillmayer/fontvolt/core/font/opentype/otl"
	"github.com/npillmayer/fontvolt/volt/builder"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object
type Intp struct {
	font    *ot.Font
	builder *builder.Builder
	repl    *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Command is a single REPL command with an optional argument.
type Command struct {
	code int
	arg  string
}

const (
	QUIT int = iota
	HELP
	CLASS
	MARKCLASS
	ATTACH
	CARETS
	SETS
	VERIFY
)

var commands = map[string]int{
	"quit":      QUIT,
	"exit":      QUIT,
	"help":      HELP,
	"class":     CLASS,
	"markclass": MARKCLASS,
	"attach":    ATTACH,
	"carets":    CARETS,
	"sets":      SETS,
	"verify":    VERIFY,
}

func parseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	code, ok := commands[strings.ToLower(fields[0])]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q, try 'help'", fields[0])
	}
	cmd := Command{code: code}
	if len(fields) > 1 {
		cmd.arg = fields[1]
	}
	switch code {
	case CLASS, MARKCLASS, ATTACH, CARETS:
		if cmd.arg == "" {
			return Command{}, fmt.Errorf("command %s needs a glyph name", fields[0])
		}
	}
	tracer().Debugf("parse command = %v", fields)
	return cmd, nil
}

func (intp *Intp) execute(cmd Command) (bool, error) {
	switch cmd.code {
	case QUIT:
		return true, nil
	case HELP:
		help()
		return false, nil
	}
	if intp.builder == nil {
		return false, errors.New("no VOLT project built, use flag -volt")
	}
	switch cmd.code {
	case CLASS:
		if c, loc, ok := intp.builder.GlyphClasses().Class(cmd.arg); ok {
			pterm.Printfln("glyph %s has class %d (%s), assigned at %s", cmd.arg, c, className(c), loc)
		} else {
			pterm.Printfln("glyph %s has no glyph class", cmd.arg)
		}
	case MARKCLASS:
		if c, loc, ok := intp.builder.Facts().MarkAttachClass(cmd.arg); ok {
			pterm.Printfln("glyph %s has mark attachment class %d, assigned at %s", cmd.arg, c, loc)
		} else {
			pterm.Printfln("glyph %s has no mark attachment class", cmd.arg)
		}
	case ATTACH:
		gdef, gid, err := intp.lookup(cmd.arg)
		if err != nil {
			return false, err
		}
		pterm.Printfln("glyph %s has attachment points %v", cmd.arg, gdef.AttachList.Points(gid))
	case CARETS:
		gdef, gid, err := intp.lookup(cmd.arg)
		if err != nil {
			return false, err
		}
		for _, cv := range gdef.LigCaretList.Carets(gid) {
			if cv.Format == otl.CaretFormatPoint {
				pterm.Printfln("caret at contour point %d", cv.PointIndex)
			} else {
				pterm.Printfln("caret at coordinate %d", cv.Coordinate)
			}
		}
	case SETS:
		rows := markSetRows(intp.builder.Facts())
		if len(rows) == 1 {
			pterm.Println("no mark glyph sets")
			break
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return false, err
		}
	case VERIFY:
		msg, err := verify(intp.font)
		if err != nil {
			return false, err
		}
		pterm.Info.Println(msg)
	}
	return false, nil
}

func (intp *Intp) lookup(glyph string) (*otl.GDefTable, ot.GlyphIndex, error) {
	gdef, ok := intp.font.Table(builder.GDEF).(*otl.GDefTable)
	if !ok {
		return nil, 0, errors.New("font has no GDEF table from a VOLT build")
	}
	gid, err := otl.NewGlyphMap(intp.font.GlyphOrder()).GlyphIndex(glyph)
	return gdef, gid, err
}

// summary prints the sub-tables of the font's GDEF table.
func summary(otf *ot.Font) {
	gdef, ok := otf.Table(builder.GDEF).(*otl.GDefTable)
	if !ok {
		pterm.Info.Println("no GDEF table")
		return
	}
	pterm.Info.Printfln("GDEF table version 0x%08x", gdef.Version)
	if err := pterm.DefaultTable.WithHasHeader().WithData(gdefRows(gdef)).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
}

func gdefRows(gdef *otl.GDefTable) pterm.TableData {
	rows := pterm.TableData{{"Sub-table", "Glyphs"}}
	add := func(name string, present bool, n int) {
		if present {
			rows = append(rows, []string{name, strconv.Itoa(n)})
		} else {
			rows = append(rows, []string{name, "-"})
		}
	}
	add(ot.GDefGlyphClassDefSection, gdef.GlyphClassDef != nil, gdef.GlyphClassDef.Len())
	if gdef.AttachList != nil {
		add(ot.GDefAttachListSection, true, len(gdef.AttachList.Coverage))
	} else {
		add(ot.GDefAttachListSection, false, 0)
	}
	if gdef.LigCaretList != nil {
		add(ot.GDefLigCaretListSection, true, len(gdef.LigCaretList.Coverage))
	} else {
		add(ot.GDefLigCaretListSection, false, 0)
	}
	add(ot.GDefMarkAttachClassSection, gdef.MarkAttachClassDef != nil, gdef.MarkAttachClassDef.Len())
	if gdef.MarkGlyphSetsDef != nil {
		n := 0
		for _, cov := range gdef.MarkGlyphSetsDef.Coverages {
			n += len(cov)
		}
		add(ot.GDefMarkGlyphSetsDefSection, true, n)
	} else {
		add(ot.GDefMarkGlyphSetsDefSection, false, 0)
	}
	return rows
}

func markSetRows(facts *builder.FactAccumulator) pterm.TableData {
	rows := pterm.TableData{{"Index", "Id", "Glyphs"}}
	ids, sets := facts.MarkFilterSets()
	for i, id := range ids {
		rows = append(rows, []string{strconv.Itoa(i), strconv.Itoa(id), strings.Join(sets[i], " ")})
	}
	return rows
}

// verify compiles the GDEF table of otf and reads it back.
func verify(otf *ot.Font) (string, error) {
	t := otf.Table(builder.GDEF)
	if t == nil {
		return "", errors.New("font has no GDEF table")
	}
	data, err := t.Compile(otf)
	if err != nil {
		return "", err
	}
	gdef, err := ot.ParseGDef(data)
	if err != nil {
		return "", err
	}
	major, minor := gdef.Header().Version()
	return fmt.Sprintf("GDEF table version %d.%d compiles to %d bytes", major, minor, len(data)), nil
}

func className(c int) string {
	switch ot.GlyphClassDefEnum(c) {
	case ot.BaseGlyph:
		return "base"
	case ot.LigatureGlyph:
		return "ligature"
	case ot.MarkGlyph:
		return "mark"
	case ot.ComponentGlyph:
		return "component"
	}
	return "unknown"
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	class <glyph>      glyph class of a glyph, and where it has been assigned
	markclass <glyph>  mark attachment class of a glyph
	attach <glyph>     attachment points of a glyph
	carets <glyph>     ligature carets of a glyph
	sets               mark glyph sets, ordered by id
	verify             compile the GDEF table and read it back
	help               this text
	quit               leave interactive mode
	`)
}
