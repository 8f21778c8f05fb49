package main

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/worldsim/internal/analysis"
	"github.com/san-kum/worldsim/internal/automation"
	"github.com/san-kum/worldsim/internal/config"
	"github.com/san-kum/worldsim/internal/experiment"
	"github.com/san-kum/worldsim/internal/export"
	"github.com/san-kum/worldsim/internal/logging"
	"github.com/san-kum/worldsim/internal/optim"
	"github.com/san-kum/worldsim/internal/sim"
	"github.com/san-kum/worldsim/internal/storage"
	"github.com/san-kum/worldsim/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	dt         float64
	ticks      int
	seed       int64
	maxObjects int
	configFile string
	preset     string
	params     []string
	ensemble   int
	interval   time.Duration
	width      float64
	height     float64

	// analysis
	metric       string
	svgPath      string
	frameTick    uint64
	grid         []string
	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	perturbation float64
)

var (
	heading = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	label   = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Width(18)
	value   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

func main() {
	log := logging.Default()
	registry := experiment.NewRegistry()

	rootCmd := &cobra.Command{
		Use:   "worldsim",
		Short: "tick-based 2d physics worlds",
		RunE: func(cmd *cobra.Command, args []string) error {
			return watch(cmd, registry, "")
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".worldsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario headless and record it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorld(cmd, args, registry, log)
		},
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0.1, "simulated seconds per tick")
	runCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	runCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	runCmd.Flags().IntVar(&maxObjects, "max-objects", 10000, "object cap")
	runCmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "canvas width")
	runCmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "canvas height")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringArrayVar(&params, "param", nil, "scenario parameter override name=value")
	runCmd.Flags().IntVar(&ensemble, "ensemble", 0, "run N seeds in parallel instead of one recorded run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot metric series of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and series as json, or a frame as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgPath, "svg", "", "write the sampled frame at --tick to this svg file")
	exportCmd.Flags().Uint64Var(&frameTick, "tick", 0, "frame tick for --svg (default last)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a metric series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&metric, "metric", "kinetic_energy", "metric series to analyse")

	chaosCmd := &cobra.Command{
		Use:   "chaos [scenario]",
		Short: "lyapunov exponent and phase portrait of a pendulum chain",
		Args:  cobra.MaximumNArgs(1),
		RunE:  chaos,
	}
	chaosCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	chaosCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	chaosCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	chaosCmd.Flags().Float64Var(&dt, "dt", 0.1, "simulated seconds per tick")
	chaosCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "initial separation of the twin chain")
	chaosCmd.Flags().StringVar(&svgPath, "svg", "", "write the phase portrait to this svg file")

	tuneCmd := &cobra.Command{
		Use:   "tune [scenario]",
		Short: "grid search scenario parameters minimizing a metric",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return tune(cmd, args[0], registry)
		},
	}
	tuneCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	tuneCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	tuneCmd.Flags().StringArrayVar(&grid, "grid", nil, "parameter values name=v1,v2,...")
	tuneCmd.Flags().StringVar(&metric, "metric", "kinetic_energy", "metric to minimize")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "run a scenario across a range of one parameter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sweep(cmd, args[0], registry, log)
		},
	}
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	sweepCmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks (default from preset)")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	_ = sweepCmd.MarkFlagRequired("param")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "run a yaml script of steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(args[0], registry, log)
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "benchmark ticks per second",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return benchWorld(args[0], registry)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios := config.Scenarios()
			if len(args) > 0 {
				scenarios = args
			}
			for _, s := range scenarios {
				presets := config.ListPresets(s)
				if len(presets) == 0 {
					fmt.Printf("no presets for scenario: %s\n", s)
					continue
				}
				fmt.Printf("presets for %s:\n", s)
				for _, p := range presets {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range registry.ListScenarios() {
				fmt.Println(s)
			}
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch [scenario]",
		Short: "drive a scenario live in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario := ""
			if len(args) > 0 {
				scenario = args[0]
			}
			return watch(cmd, registry, scenario)
		},
	}
	watchCmd.Flags().DurationVar(&interval, "interval", 16*time.Millisecond, "wall time between ticks")
	watchCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	watchCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, analyzeCmd, chaosCmd, tuneCmd, sweepCmd, scriptCmd,
		benchCmd, presetsCmd, scenariosCmd, watchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves preset, then config file, then explicitly set flags.
func loadConfig(cmd *cobra.Command, scenario string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if scenario == "" {
			return nil, fmt.Errorf("preset %s needs a scenario", preset)
		}
		cfg = config.GetPreset(scenario, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scenario))
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if scenario != "" {
		cfg.Scenario = scenario
	}
	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("max-objects") {
		cfg.MaxObjects = maxObjects
	}
	if flags.Changed("width") {
		cfg.Canvas.Width = width
	}
	if flags.Changed("height") {
		cfg.Canvas.Height = height
	}
	return cfg, cfg.Validate()
}

func parseParams(raw []string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for _, p := range raw {
		name, val, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("param %q: expected name=value", p)
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", p, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

func runWorld(cmd *cobra.Command, args []string, registry *experiment.Registry, log *logging.Logger) error {
	scenario := ""
	if len(args) > 0 {
		scenario = args[0]
	}
	cfg, err := loadConfig(cmd, scenario)
	if err != nil {
		return err
	}
	overrides, err := parseParams(params)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	exp := experiment.New(cfg, registry, log)
	for name, v := range overrides {
		exp.Override(name, v)
	}

	if ensemble > 0 {
		return runEnsemble(ctx, exp, ensemble)
	}

	if err := exp.Setup(); err != nil {
		return err
	}

	log.Info("running", "scenario", cfg.Scenario, "ticks", cfg.Ticks, "dt", cfg.Dt)
	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Preset:      preset,
		Seed:        cfg.Seed,
		Dt:          cfg.Dt,
		SampleEvery: cfg.SampleEvery,
		Canvas:      cfg.Canvas,
	}, result)
	if err != nil {
		return err
	}

	fmt.Println(heading.Render(result.Scenario))
	row := func(k, v string) { fmt.Println(label.Render(k) + value.Render(v)) }
	row("run id", runID)
	row("ticks", strconv.FormatUint(result.Ticks, 10))
	row("objects", strconv.Itoa(exp.Engine().Len()))
	row("elapsed", elapsed.String())
	for _, name := range slices.Sorted(maps.Keys(result.Metrics)) {
		row(name, fmt.Sprintf("%.6f", result.Metrics[name]))
	}
	for _, e := range result.Errors {
		row("error", e.Error())
	}
	return nil
}

func runEnsemble(ctx context.Context, exp *experiment.Experiment, n int) error {
	results, err := exp.Ensemble(ctx, n)
	if err != nil {
		return err
	}

	names := slices.Sorted(maps.Keys(results[0].Metrics))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tTICKS\t"+strings.ToUpper(strings.Join(names, "\t")))
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d", exp.Config().Seed+int64(i), r.Ticks)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.6f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tPRESET\tLABEL\tTIME\tTICKS\tDT\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%.4f\t%d\n",
			run.ID,
			run.Scenario,
			run.Preset,
			run.Label,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Dt,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, sampleTicks, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(sampleTicks) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d (every %d ticks)\n\n", len(sampleTicks), meta.SampleEvery)

	for _, name := range slices.Sorted(maps.Keys(series)) {
		graph := asciigraph.Plot(series[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs tick"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

type runExport struct {
	*storage.RunMetadata
	SampleTicks []uint64             `json:"sample_ticks"`
	Series      map[string][]float64 `json:"series"`
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	if svgPath != "" {
		return exportFrame(st, meta)
	}

	series, sampleTicks, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(runExport{RunMetadata: meta, SampleTicks: sampleTicks, Series: series})
}

func exportFrame(st *storage.Store, meta *storage.RunMetadata) error {
	frames, err := st.LoadFrames(meta.ID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no frames", meta.ID)
	}

	frame := frames[len(frames)-1]
	if frameTick != 0 {
		i := slices.IndexFunc(frames, func(f sim.Frame) bool { return f.Tick == frameTick })
		if i < 0 {
			return fmt.Errorf("no frame at tick %d (sampled every %d)", frameTick, meta.SampleEvery)
		}
		frame = frames[i]
	}

	svg := export.FrameSVG(frame.Objects, meta.Canvas, meta.Offset)
	if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote tick %d to %s\n", frame.Tick, svgPath)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, _, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	data, ok := series[metric]
	if !ok {
		return fmt.Errorf("run %s has no %s series (available: %v)", runID, metric, slices.Sorted(maps.Keys(series)))
	}
	ps := analysis.PowerSpectrum(data)
	if len(ps) < 2 {
		return fmt.Errorf("not enough samples")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	graph := asciigraph.Plot(ps,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+metric+")"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, float64(meta.SampleEvery))
	fmt.Printf("dominant frequency: %.5f cycles/tick\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.1f ticks (%.3f s)\n", 1/freq, meta.Dt/freq)
	}
	return nil
}

func chaos(cmd *cobra.Command, args []string) error {
	scenario := "double-pendulum"
	if len(args) > 0 {
		scenario = args[0]
	}
	cfg, err := loadConfig(cmd, scenario)
	if err != nil {
		return err
	}
	p, err := experiment.PendulumChain(cfg)
	if err != nil {
		return err
	}
	chain := analysis.Chain{G: p.G, Mode: p.Mode(), Bobs: p.Bobs, Dt: cfg.Dt}

	lambda, err := analysis.LyapunovExponent(chain, cfg.Ticks, perturbation)
	if err != nil {
		return err
	}
	portrait, err := analysis.Phase(chain, len(chain.Bobs)-1, cfg.Ticks)
	if err != nil {
		return err
	}

	fmt.Println(heading.Render(p.Name()))
	row := func(k, v string) { fmt.Println(label.Render(k) + value.Render(v)) }
	row("mode", p.Mode().String())
	row("ticks", strconv.Itoa(cfg.Ticks))
	row("lyapunov", fmt.Sprintf("%.4f /s", lambda))
	if lambda > 0.01 {
		row("verdict", "chaotic")
	} else {
		row("verdict", "regular")
	}

	fmt.Println("\nphase portrait (angle vs angular velocity, last bob):")
	fmt.Print(portrait.ASCII(70, 20))

	if len(chain.Bobs) == 2 {
		section, err := analysis.Poincare(chain, cfg.Ticks)
		if err != nil {
			return err
		}
		fmt.Printf("\npoincare section (%d crossings):\n", len(section.Points))
		fmt.Print(section.ASCII(70, 20))
	}

	if svgPath != "" {
		svg := export.TrajectorySVG(portrait.Points, 600, 600, "#00ff88")
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}
	return nil
}

func parseGrid(raw []string) ([]string, [][]float64, error) {
	var names []string
	var ranges [][]float64
	for _, g := range raw {
		name, list, ok := strings.Cut(g, "=")
		if !ok {
			return nil, nil, fmt.Errorf("grid %q: expected name=v1,v2", g)
		}
		var values []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("grid %q: %w", g, err)
			}
			values = append(values, v)
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func tune(cmd *cobra.Command, scenario string, registry *experiment.Registry) error {
	cfg, err := loadConfig(cmd, scenario)
	if err != nil {
		return err
	}
	names, ranges, err := parseGrid(grid)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("at least one --grid is required")
	}

	build := func(p map[string]float64) (*experiment.Experiment, error) {
		exp := experiment.New(cfg.Clone(), registry, nil)
		for k, v := range p {
			exp.Override(k, v)
		}
		return exp, exp.Setup()
	}

	best, val, err := optim.NewGridSearch(names, ranges).Search(context.Background(), build, metric)
	if err != nil {
		return err
	}

	fmt.Println(heading.Render("best " + metric))
	fmt.Println(label.Render(metric) + value.Render(fmt.Sprintf("%.6f", val)))
	for _, name := range slices.Sorted(maps.Keys(best)) {
		fmt.Println(label.Render(name) + value.Render(strconv.FormatFloat(best[name], 'g', -1, 64)))
	}
	return nil
}

func sweep(cmd *cobra.Command, scenario string, registry *experiment.Registry, log *logging.Logger) error {
	r := &automation.Runner{Registry: registry, Log: log}
	results, err := r.RunSweep(context.Background(), automation.Sweep{
		Scenario: scenario,
		Preset:   preset,
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		Steps:    sweepSteps,
		Ticks:    ticks,
	})
	if err != nil {
		return err
	}

	names := slices.Sorted(maps.Keys(results[0].Metrics))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(sweepParam)+"\t"+strings.ToUpper(strings.Join(names, "\t")))
	for _, res := range results {
		fmt.Fprintf(w, "%.4g", res.Value)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.6f", res.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runScript(path string, registry *experiment.Registry, log *logging.Logger) error {
	script, err := automation.LoadScript(path)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	r := &automation.Runner{Registry: registry, Store: st, Log: log}
	results, err := r.RunScript(ctx, script)
	fmt.Printf("%s: %d of %d steps completed\n", script.Name, len(results), len(script.Steps))
	return err
}

func benchWorld(scenario string, registry *experiment.Registry) error {
	if !registry.Has(scenario) {
		return fmt.Errorf("unknown scenario: %s (available: %v)", scenario, registry.ListScenarios())
	}

	counts := []int{100, 1000, 5000}
	dts := []float64{0.01, 0.1}

	fmt.Printf("benchmarking %s\n\n", scenario)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TICKS\tDT\tOBJECTS\tTIME\tTICKS/SEC")

	for _, n := range counts {
		for _, d := range dts {
			cfg := config.DefaultConfig()
			cfg.Scenario = scenario
			cfg.Ticks = n
			cfg.Dt = d
			cfg.SampleEvery = n

			exp := experiment.New(cfg, registry, nil)
			if err := exp.Setup(); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%.2f\t%d\t%v\t%.0f\n",
				result.Ticks, d, exp.Engine().Len(), elapsed, float64(result.Ticks)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func watch(cmd *cobra.Command, registry *experiment.Registry, scenario string) error {
	base, err := loadConfig(cmd, scenario)
	if err != nil {
		return err
	}
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}

	// The terminal belongs to the dashboard, so records go nowhere.
	launch := func(name string) (*sim.Runner, error) {
		cfg := base.Clone()
		if name != base.Scenario {
			cfg = config.DefaultConfig()
		}
		cfg.Scenario = name
		exp := experiment.New(cfg, registry, logging.Discard())
		if err := exp.Setup(); err != nil {
			return nil, err
		}
		return exp.Runner(), nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	m := tui.New(ctx, launch, registry.ListScenarios(), interval)
	if scenario != "" {
		if m, err = m.Open(scenario); err != nil {
			return err
		}
	}
	return tui.Run(m)
}
