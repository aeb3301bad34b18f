package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/joemooney/jmt/pkg/export"
	"github.com/joemooney/jmt/pkg/interaction"
	"github.com/joemooney/jmt/pkg/jmtlog"
	"github.com/joemooney/jmt/pkg/model"
	"github.com/joemooney/jmt/pkg/persistence"
)

const version = "1.0.0"

var (
	inPath     = flag.String("in", "", "Path to a .jmt diagram file (omit to start from an empty StateMachine diagram)")
	scriptPath = flag.String("script", "", "Path to a YAML operation script to replay against the diagram")
	outPath    = flag.String("out", "", "Path to write the rendered/exported output")
	format     = flag.String("format", "svg", "Export format: svg, json, jmt, or all")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
	versionF   = flag.Bool("version", false, "Print version and exit")
	help       = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("jmtcli version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}

	validFormats := map[string]bool{"svg": true, "json": true, "jmt": true, "all": true}
	if !validFormats[*format] {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q, must be one of: svg, json, jmt, all\n", *format)
		os.Exit(1)
	}
	if *outPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -out flag is required")
		os.Exit(1)
	}

	if *verbose {
		logger, _ := zap.NewDevelopment()
		jmtlog.SetLogger(logger)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run loads or creates a diagram, replays an optional operation script
// against it through pkg/interaction, and exports the result, exercising
// the whole interaction surface headlessly the way a generation run
// exercises a pipeline end to end.
func run() error {
	d, err := loadDiagram()
	if err != nil {
		return fmt.Errorf("load diagram: %w", err)
	}
	eng := interaction.New(d)

	if *scriptPath != "" {
		if *verbose {
			fmt.Printf("Replaying script %s\n", *scriptPath)
		}
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		s, err := loadScript(data)
		if err != nil {
			return err
		}
		start := time.Now()
		if err := s.run(d, eng); err != nil {
			return fmt.Errorf("run script: %w", err)
		}
		if *verbose {
			fmt.Printf("Script replayed %d ops in %v\n", len(s.Ops), time.Since(start))
			printStats(d)
		}
	}

	return exportResult(d)
}

func loadDiagram() (*model.Diagram, error) {
	if *inPath == "" {
		return model.New(model.StateMachine, "untitled"), nil
	}
	if *verbose {
		fmt.Printf("Loading %s\n", *inPath)
	}
	data, err := os.ReadFile(*inPath)
	if err != nil {
		return nil, err
	}
	return persistence.Load(data)
}

func exportResult(d *model.Diagram) error {
	ext := strings.TrimPrefix(filepath.Ext(*outPath), ".")
	formats := []string{*format}
	if *format == "all" {
		formats = []string{"svg", "json", "jmt"}
	}

	for _, f := range formats {
		path := *outPath
		if *format == "all" {
			path = strings.TrimSuffix(*outPath, "."+ext) + "." + f
		}
		if err := exportOne(d, f, path); err != nil {
			return err
		}
	}
	return nil
}

func exportOne(d *model.Diagram, format, path string) error {
	if *verbose {
		fmt.Printf("Exporting %s to %s\n", format, path)
	}
	var err error
	switch format {
	case "svg":
		err = export.SaveSVGToFile(d, path, export.DefaultSVGOptions())
	case "json":
		err = export.SaveJSONToFile(d, path)
	case "jmt":
		data, saveErr := persistence.Save(d)
		if saveErr != nil {
			return saveErr
		}
		err = os.WriteFile(path, data, 0644)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	if *verbose {
		if info, statErr := os.Stat(path); statErr == nil {
			fmt.Printf("  Wrote %d bytes\n", info.Size())
		}
	}
	return nil
}

func printStats(d *model.Diagram) {
	fmt.Println("\nDiagram Statistics:")
	fmt.Printf("  States: %d\n", len(d.States))
	fmt.Printf("  Regions: %d\n", len(d.Regions))
	fmt.Printf("  PseudoStates: %d\n", len(d.PseudoStates))
	fmt.Printf("  Connections: %d\n", len(d.Connections))
	fmt.Printf("  AuxNodes: %d\n", len(d.AuxNodes))
	fmt.Printf("  Selected: %d\n", d.Selection.Len())
}

func printHelp() {
	fmt.Println("jmtcli - headless driver for the jmt diagram core")
	fmt.Println()
	fmt.Println("Usage: jmtcli -out <path> [-in diagram.jmt] [-script ops.yaml] [-format svg|json|jmt|all]")
	fmt.Println()
	flag.PrintDefaults()
}
