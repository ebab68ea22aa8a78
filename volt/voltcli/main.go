/*
Command voltcli builds the GDEF table of a font from a VOLT project.

	voltcli -font MyFont.ttf -volt MyFont.vtp -o MyFont-gdef.ttf
	voltcli -glyphs glyphorder.txt -volt MyFont.vtp -i

The font may be given as a font file, as the name of a system font, or as
"goregular" for a packaged test font. Instead of a font, a glyph order file
may be given (-glyphs), holding one glyph name per line.

With flag -i, voltcli enters interactive mode and lets users inspect the
glyph definitions of the build. Type "help" for a list of commands.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fontvolt/core"
	"github.com/npillmayer/fontvolt/core/font/opentype/ot"
	"github.com/npillmayer/fontvolt/volt/builder"
	"github.com/npillmayer/fontvolt/volt/parser"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'fontvolt.volt'
func tracer() tracing.Trace {
	return tracing.Select("fontvolt.volt")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.fontvolt.volt":  "Info",
		"trace.fontvolt.fonts": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load (file, system font or 'goregular')")
	glyphlist := flag.String("glyphs", "", "Glyph order file, instead of a font")
	voltfile := flag.String("volt", "", "VOLT project to build GDEF from")
	outfile := flag.String("o", "", "Write font with new GDEF table to file")
	interactive := flag.Bool("i", false, "Enter interactive mode")
	flag.Parse()
	setTraceLevel(*tlevel, "fontvolt.volt", "fontvolt.fonts")
	pterm.Info.Println("Welcome to VOLT CLI") // colored welcome message
	tracer().Debugf("Trace level is %s", *tlevel)
	//
	// load font to use
	var otf *ot.Font
	var err error
	if *glyphlist != "" {
		otf, err = loadGlyphList(*glyphlist)
	} else {
		otf, err = loadFont(*fontname)
	}
	if err != nil {
		core.UserError(err)
		os.Exit(4)
	}
	pterm.Printfln("font has %d glyphs and tables %v", otf.NumGlyphs(), otf.TableTags())
	//
	// build GDEF
	intp := &Intp{font: otf}
	if *voltfile != "" {
		if intp.builder, err = buildGDEF(otf, *voltfile); err != nil {
			core.UserError(err)
			os.Exit(5)
		}
		summary(otf)
	}
	if *outfile != "" {
		if err := writeFont(otf, *outfile); err != nil {
			core.UserError(err)
			os.Exit(6)
		}
	}
	if !*interactive {
		return
	}
	//
	// set up REPL
	repl, err := readline.New("volt > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	intp.repl = repl
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                             // go into interactive mode
}

func setTraceLevel(l string, keys ...string) {
	for _, key := range keys {
		switch strings.ToLower(l) {
		case "debug":
			tracing.Select(key).SetTraceLevel(tracing.LevelDebug)
		case "error":
			tracing.Select(key).SetTraceLevel(tracing.LevelError)
		default:
			tracing.Select(key).SetTraceLevel(tracing.LevelInfo)
		}
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func buildGDEF(otf *ot.Font, voltfile string) (*builder.Builder, error) {
	f, err := os.Open(voltfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open VOLT project %s", voltfile)
	}
	defer f.Close()
	project, err := parser.Parse(f, voltfile)
	if err != nil {
		return nil, err
	}
	b := builder.NewBuilder(otf, project)
	if err := b.Build(); err != nil {
		return nil, err
	}
	return b, nil
}

func writeFont(otf *ot.Font, path string) error {
	data, err := otf.Binary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return core.WrapError(err, core.EINVALID, "cannot write font %s", path)
	}
	pterm.Info.Printfln("wrote %d bytes to %s", len(data), path)
	return nil
}
