package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"

	"github.com/vanderheijden86/dsv/pkg/analysis"
	"github.com/vanderheijden86/dsv/pkg/anim"
	"github.com/vanderheijden86/dsv/pkg/config"
	"github.com/vanderheijden86/dsv/pkg/debug"
	"github.com/vanderheijden86/dsv/pkg/export"
	"github.com/vanderheijden86/dsv/pkg/model"
	"github.com/vanderheijden86/dsv/pkg/script"
	"github.com/vanderheijden86/dsv/pkg/tree"
	"github.com/vanderheijden86/dsv/pkg/ui"
	"github.com/vanderheijden86/dsv/pkg/version"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	configPath := flag.String("config", "", "Config file (default: .dsv.yaml in a parent dir, then ~/.config/dsv/config.yaml)")
	valuesFlag := flag.String("values", "", "Comma-separated values inserted in order (e.g., 5,2,8)")
	randomCount := flag.Int("random", 0, "Build a tree of N random values instead of --values")
	seed := flag.Uint64("seed", 0, "Seed for --random and random script steps (0: config seed or clock)")
	orderFlag := flag.String("order", "", "Traversal order: pre, in or post (default from config)")
	width := flag.Float64("width", -1, "Container width in pixels for layout and images (default from config)")
	robotTree := flag.Bool("robot-tree", false, "Output the tree, layout, traversals and stats as JSON")
	robotLayout := flag.Bool("robot-layout", false, "Output node coordinates and edges as JSON")
	robotStats := flag.Bool("robot-stats", false, "Output tree statistics as JSON")
	robotScripts := flag.Bool("robot-scripts", false, "Output the built-in scripts as JSON")
	robotHelp := flag.Bool("robot-help", false, "Show help for scripted use")
	scriptRef := flag.String("script", "", "Replay a built-in script or YAML file on the tree and output each step as JSON")
	exportPath := flag.String("export", "", "Export a snapshot; format from the extension (.svg, .png, .json, .md, .sqlite)")
	exportAll := flag.String("export-all", "", "Export the configured formats into this directory")
	exportWizard := flag.Bool("export-wizard", false, "Choose export formats and directory interactively")
	flag.Parse()

	if *help {
		fmt.Println("Usage: dsv [options]")
		fmt.Println("\nA terminal visualizer for linked lists, stacks, queues and binary trees.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *robotHelp {
		printRobotHelp(os.Stdout)
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("dsv %s\n", version.Version)
		os.Exit(0)
	}

	if *robotScripts {
		if err := writeScripts(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding scripts: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	cfg, cfgPath, err := config.LoadDiscovered(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	debug.Log("config: %q", cfgPath)

	order := cfg.Order()
	if *orderFlag != "" {
		o, err := model.ParseOrder(*orderFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		order = o
	}
	if *width >= 0 {
		cfg.Export.ContainerWidth = *width
	}
	if *seed != 0 {
		cfg.Random.Seed = *seed
	}

	values, err := parseValues(*valuesFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(values) > 0 && *randomCount > 0 {
		fmt.Fprintln(os.Stderr, "Error: --values and --random are mutually exclusive")
		os.Exit(1)
	}
	rng := newRand(cfg.Random.Seed)
	t := buildTree(values, *randomCount, cfg.Random.Max, rng)

	if *scriptRef != "" {
		s, err := script.Load(*scriptRef)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		res, err := script.Run(s, t, rng)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running script %s: %v\n", s.Name, err)
			os.Exit(1)
		}
		t = res.Final
		if !*robotTree && !*robotLayout && !*robotStats && *exportPath == "" && *exportAll == "" && !*exportWizard {
			if err := writeJSON(os.Stdout, res); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding script result: %v\n", err)
				os.Exit(1)
			}
			os.Exit(0)
		}
	}

	opts := export.SnapshotOptions{
		Tree:      t,
		Layout:    cfg.LayoutOptions(cfg.Export.ContainerWidth),
		Order:     order,
		Highlight: anim.NoHighlight,
	}

	switch {
	case *robotTree:
		exitOn(export.WriteDocument(os.Stdout, export.NewDocument(opts)), "encoding tree")
		os.Exit(0)
	case *robotLayout:
		exitOn(writeJSON(os.Stdout, export.NewDocument(opts).Layout), "encoding layout")
		os.Exit(0)
	case *robotStats:
		exitOn(writeJSON(os.Stdout, analysis.Compute(t)), "encoding stats")
		os.Exit(0)
	}

	if *exportPath != "" {
		opts.Path = *exportPath
		if err := export.SaveSnapshot(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d nodes to %s\n", t.Len(), *exportPath)
		os.Exit(0)
	}

	if *exportAll != "" || *exportWizard {
		dir := *exportAll
		formats, err := parseFormats(cfg.Export.Formats)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if *exportWizard {
			wiz := export.NewWizard(export.WizardConfig{
				Formats:        formats,
				Dir:            firstNonEmpty(dir, cfg.Export.Dir, "."),
				ContainerWidth: int(cfg.Export.ContainerWidth),
			})
			answers, err := wiz.Run()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Export cancelled: %v\n", err)
				os.Exit(1)
			}
			dir, formats = answers.Dir, answers.Formats
			opts.Title = answers.Title
			opts.Layout = cfg.LayoutOptions(float64(answers.ContainerWidth))
		}
		opts.Path = "tree-" + time.Now().Format("20060102-150405")
		results, err := export.ExportAll(context.Background(), opts, dir, formats)
		for _, r := range results {
			if r.Err == nil {
				fmt.Printf("  %-6s %s\n", r.Format, r.Path)
			}
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := runTUI(cfg, cfgPath, t); err != nil {
		fmt.Printf("Error running dsv: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg config.Config, cfgPath string, t tree.Tree) error {
	// Anything logged while the alternate screen is up would tear it.
	closeLog := redirectLogs()
	defer closeLog()

	m := ui.NewModel(cfg, ui.DefaultTheme(lipgloss.DefaultRenderer()))
	m.SetConfigPath(cfgPath)
	if !t.Empty() {
		m.SetTree(t)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	if cfgPath != "" {
		worker, err := ui.NewConfigWorker(ui.WorkerConfig{
			Path:      cfgPath,
			Sender:    p,
			ForcePoll: os.Getenv("DSV_FORCE_POLL") != "",
		})
		if err != nil {
			log.Printf("warning: config hot reload disabled: %v", err)
		} else {
			if err := worker.Start(); err != nil {
				log.Printf("warning: config hot reload disabled: %v", err)
			}
			defer worker.Stop()
		}
	}

	_, err := p.Run()
	return err
}

// redirectLogs sends log and debug output to dsv.log in the state dir.
func redirectLogs() func() {
	dir := config.StateDir()
	if dir == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }
	}
	f, err := os.OpenFile(filepath.Join(dir, "dsv.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }
	}
	log.SetOutput(f)
	debug.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		debug.SetOutput(os.Stderr)
		f.Close()
	}
}

// parseValues reads "5, 2,8" into ints. An empty string yields nil.
func parseValues(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	values := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q in --values", p)
		}
		values = append(values, v)
	}
	return values, nil
}

func parseFormats(names []string) ([]export.Format, error) {
	formats := make([]export.Format, 0, len(names))
	for _, n := range names {
		f, err := export.ParseFormat(n)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		return nil, errors.New("no export formats configured")
	}
	return formats, nil
}

// buildTree inserts values in order, or randomCount random values when
// randomCount is positive.
func buildTree(values []int, randomCount, randomMax int, rng *rand.Rand) tree.Tree {
	if randomCount > 0 {
		values = tree.RandomValues(randomCount, randomMax, rng)
	}
	return tree.FromValues(values...)
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type scriptSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Steps       int    `json:"steps"`
}

func writeScripts(w io.Writer) error {
	builtins := script.Builtins()
	summaries := make([]scriptSummary, len(builtins))
	for i, s := range builtins {
		summaries[i] = scriptSummary{Name: s.Name, Description: s.Description, Steps: len(s.Steps)}
	}
	output := struct {
		Scripts []scriptSummary `json:"scripts"`
	}{Scripts: summaries}
	return writeJSON(w, output)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func exitOn(err error, what string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
		os.Exit(1)
	}
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}

func printRobotHelp(w io.Writer) {
	lines := []string{
		"dsv scripted interface",
		"======================",
		"Build a tree from flags, then print it as JSON or export it. Nothing is",
		"animated outside the TUI; output reflects the final tree.",
		"",
		"Building the tree:",
		"  --values 5,2,8",
		"      Insert values in order. Each lands in the first free slot, level by",
		"      level, left to right, so the tree is always complete.",
		"  --random N [--seed S]",
		"      Insert N random values in [0, random.max). A fixed seed repeats.",
		"  --script NAME|FILE",
		"      Replay insert/remove/clear/random/traverse steps. Without another",
		"      output flag, prints every step: {script, steps: [{index, op, tree,",
		"      size, order, output}]}.",
		"",
		"Outputs:",
		"  --robot-tree",
		"      Full document: values (level order), levels, layout, traversals",
		"      (pre, in, post), stats.",
		"  --robot-layout",
		"      Node coordinates: x is the in-order rank times step_x, centered in",
		"      --width; y is depth times step_y plus top_margin.",
		"  --robot-stats",
		"      nodes, height, leaves, complete, min/max/mean/median/std_dev,",
		"      diameter, center (highest betweenness slot).",
		"  --robot-scripts",
		"      Built-in scripts: {scripts: [{name, description, steps}]}.",
		"",
		"Exports:",
		"  --export FILE          .svg .png .json .md .sqlite",
		"  --export-all DIR       every format in export.formats",
		"  --export-wizard        pick formats interactively",
		"",
		"Slots identify nodes: root 0, children of i at 2i+1 and 2i+2.",
	}
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}
