package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/clothsim/internal/analysis"
	"github.com/san-kum/clothsim/internal/automation"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/export"
	"github.com/san-kum/clothsim/internal/gui"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/optim"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
	"github.com/san-kum/clothsim/internal/tui"
	"github.com/san-kum/clothsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logFile    string
	configFile string
	preset     string
	material   string
	gridW      int
	gridH      int
	spacing    float64
	dt         float64
	duration   float64
	seed       int64
	// headless run options
	watch     bool
	frameRate int
	// snapshot output
	outFile    string
	seriesFile string
	svgWidth   int
	svgHeight  int
	// analyze
	divergenceFrames int
	// sweep
	sweepMetric  string
	sweepDt      []float64
	sweepSpacing []float64
)

func main() {
	var closeLog func()

	rootCmd := &cobra.Command{
		Use:   "clothsim",
		Short: "mass-spring cloth simulation",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logFile == "" {
				return nil
			}
			f, err := tea.LogToFile(logFile, "clothsim")
			if err != nil {
				return fmt.Errorf("open log: %w", err)
			}
			closeLog = func() { f.Close() }
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			quietLog()
			return viz.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".clothsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "append debug log to file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&watch, "watch", false, "draw the cloth while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --watch")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view (mouse drag, keys 1-3)",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "interactive window view",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addSimFlags(guiCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy, sag and strain of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "sway frequency and settling analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&divergenceFrames, "divergence", 0, "also estimate divergence over this many frames")

	compareCmd := &cobra.Command{
		Use:   "compare [material...]",
		Short: "run the same cloth under several materials",
		RunE:  compareMaterials,
	}
	addSimFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	materialsCmd := &cobra.Command{
		Use:   "materials",
		Short: "list fabrics and their coefficients",
		Args:  cobra.NoArgs,
		RunE:  listMaterials,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "play a scripted scenario and store it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addSimFlags(scenarioCmd)

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "simulate and write the final cloth as SVG",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	addSimFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "cloth.svg", "output file")
	snapshotCmd.Flags().StringVar(&seriesFile, "energy-svg", "", "also plot the energy series to this file")
	snapshotCmd.Flags().IntVar(&svgWidth, "svg-width", 800, "image width")
	snapshotCmd.Flags().IntVar(&svgHeight, "svg-height", 600, "image height")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search dt and spacing for the lowest metric value",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "strain", "metric to minimize")
	sweepCmd.Flags().Float64SliceVar(&sweepDt, "dt-values", []float64{0.008, 0.016, 0.033}, "timesteps to try")
	sweepCmd.Flags().Float64SliceVar(&sweepSpacing, "spacing-values", []float64{10, 15, 20}, "spacings to try")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd,
		analyzeCmd, compareCmd, presetsCmd, materialsCmd, scenarioCmd, snapshotCmd, sweepCmd)

	err := rootCmd.Execute()
	if closeLog != nil {
		closeLog()
	}
	if err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&material, "material", config.DefaultMaterial, "cotton, silk or denim")
	cmd.Flags().IntVar(&gridW, "width", cloth.DefaultGridWidth, "particles per row")
	cmd.Flags().IntVar(&gridH, "height", cloth.DefaultGridHeight, "particle rows")
	cmd.Flags().Float64Var(&spacing, "spacing", cloth.DefaultSpacing, "rest distance between neighbours")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "seed recorded with the run")
}

// quietLog silences the standard logger unless --log was given, so the
// full-screen views are not drawn over.
func quietLog() {
	if logFile == "" {
		log.SetOutput(io.Discard)
	}
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadInto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("material") {
		cfg.Material = material
	}
	if flags.Changed("width") {
		cfg.Grid.Width = gridW
	}
	if flags.Changed("height") {
		cfg.Grid.Height = gridH
	}
	if flags.Changed("spacing") {
		cfg.Grid.Spacing = spacing
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func pointerDriver(cfg *config.Config) sim.Driver {
	if !cfg.Pointer.Enabled {
		return nil
	}
	return sim.DriverFunc(func(frame int, _ *cloth.Cloth) cloth.Pointer {
		return cfg.PointerAt(frame)
	})
}

func runLabel(cfg *config.Config) string {
	if preset != "" {
		return preset
	}
	return cfg.Material
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		Seed:          cfg.Seed,
		ValidateState: cfg.ValidateState,
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	m, err := cfg.GetMaterial()
	if err != nil {
		return err
	}
	c, err := cloth.New(cfg.Layout(), m)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := sim.New(c, pointerDriver(cfg))
	for _, metric := range metrics.DefaultMetrics() {
		s.AddMetric(metric)
	}
	if watch {
		r := tui.NewLiveRenderer(os.Stdout, runLabel(cfg), frameRate)
		r.Start()
		defer r.Stop()
		s.AddObserver(r)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s cloth %s for %d frames...\n", m.Name(), cfg.Layout(), cfg.Frames())
	log.Printf("run start: preset=%q material=%s layout=%s dt=%g", preset, m.Name(), cfg.Layout(), cfg.Dt)
	start := time.Now()

	result, err := s.Run(ctx, simConfig(cfg))
	if err != nil {
		if result == nil {
			return err
		}
		fmt.Printf("stopped after %d frames: %v\n", result.StepsTaken, err)
	}
	elapsed := time.Since(start)

	runID, saveErr := st.Save(storage.RunInfo{
		Label:    runLabel(cfg),
		Material: m,
		Layout:   cfg.Layout(),
		Seed:     cfg.Seed,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
	}, result)
	if saveErr != nil {
		return saveErr
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	printMetrics(os.Stdout, result.Metrics)
	return err
}

func printMetrics(w io.Writer, m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6f\n", name, m[name])
	}
}

func buildCloth(cmd *cobra.Command) (*cloth.Cloth, *config.Config, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	m, err := cfg.GetMaterial()
	if err != nil {
		return nil, nil, err
	}
	c, err := cloth.New(cfg.Layout(), m)
	if err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	c, cfg, err := buildCloth(cmd)
	if err != nil {
		return err
	}
	quietLog()
	return viz.Run(c, runLabel(cfg), cfg.Dt)
}

func runGUI(cmd *cobra.Command, args []string) error {
	c, cfg, err := buildCloth(cmd)
	if err != nil {
		return err
	}
	gui.Run(c, "clothsim :: "+runLabel(cfg))
	return nil
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
	fmt.Fprintln(w, "ID\tMATERIAL\tGRID\tTIME\tDURATION\tDT\tFRAMES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Material,
			run.Layout,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Frames,
		)
	}

	return w.Flush()
}

func loadSeries(runID string) (*storage.RunMetadata, []storage.FrameRecord, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("no data for run %s", runID)
	}
	return meta, frames, nil
}

func column(frames []storage.FrameRecord, field func(storage.FrameRecord) float64) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = field(f)
	}
	return out
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("material: %s  grid: %s\n", meta.Material, meta.Layout)
	fmt.Printf("samples: %d\n\n", len(frames))

	series := []struct {
		caption string
		field   func(storage.FrameRecord) float64
	}{
		{"energy", func(f storage.FrameRecord) float64 { return f.Energy }},
		{"sag", func(f storage.FrameRecord) float64 { return f.Sag }},
		{"max strain", func(f storage.FrameRecord) float64 { return f.Strain }},
	}

	for _, s := range series {
		graph := asciigraph.Plot(column(frames, s.field),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, frames, err := loadSeries(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"time", "material", "energy", "sag", "strain"}); err != nil {
		return err
	}
	for _, f := range frames {
		row := []string{
			strconv.FormatFloat(f.Time, 'f', 6, 64),
			f.Material,
			strconv.FormatFloat(f.Energy, 'f', 6, 64),
			strconv.FormatFloat(f.Sag, 'f', 6, 64),
			strconv.FormatFloat(f.Strain, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadSeries(args[0])
	if err != nil {
		return err
	}
	if meta.Dt <= 0 {
		return fmt.Errorf("run %s has no timestep", meta.ID)
	}

	sag := column(frames, func(f storage.FrameRecord) float64 { return f.Sag })

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("material: %s\n\n", meta.Material)

	ps := analysis.PowerSpectrum(sag)
	if len(ps) > 4 {
		graph := asciigraph.Plot(ps[:len(ps)/4],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (sag)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq := analysis.DominantFrequency(sag, 1/meta.Dt)
	fmt.Printf("dominant sway frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	peak := 0.0
	for _, v := range sag {
		peak = max(peak, v)
	}
	if settle := analysis.SettleTime(sag, meta.Dt, 0.01*peak); settle >= 0 {
		fmt.Printf("settles within 1%% after: %.2f s\n", settle)
	}

	if divergenceFrames > 0 {
		m, err := cloth.MaterialByName(meta.Material)
		if err != nil {
			return err
		}
		rate, err := analysis.Divergence(meta.Layout, m, meta.Dt, divergenceFrames, 1e-3)
		if err != nil {
			return err
		}
		fmt.Printf("divergence rate: %.4f /s\n", rate)
	}
	return nil
}

func compareMaterials(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	mats := cloth.Materials()
	if len(args) > 0 {
		mats = make([]cloth.Material, 0, len(args))
		for _, name := range args {
			m, err := cloth.MaterialByName(name)
			if err != nil {
				return err
			}
			mats = append(mats, m)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("comparing %d materials on %s for %.2fs\n\n", len(mats), cfg.Layout(), cfg.Duration)
	start := time.Now()

	ens := sim.NewEnsemble(cfg.Layout(), mats, pointerDriver(cfg), metrics.DefaultMetrics)
	results, err := ens.Run(ctx, simConfig(cfg))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MATERIAL\tENERGY\tDRIFT\tSAG\tSTRAIN\tSTABILITY")
	for i, r := range results {
		fmt.Fprintf(w, "%s\t%.1f\t%.4f\t%.2f\t%.4f\t%.2f\n",
			mats[i].Name(),
			r.Metrics["energy"],
			r.Metrics["energy_drift"],
			r.Metrics["sag"],
			r.Metrics["strain"],
			r.Metrics["stability"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", time.Since(start))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	m, err := cfg.GetMaterial()
	if err != nil {
		return err
	}

	build := func(params map[string]float64) (*sim.Simulator, sim.Config, error) {
		l := cfg.Layout()
		l.Spacing = params["spacing"]
		c, err := cloth.New(l, m)
		if err != nil {
			return nil, sim.Config{}, err
		}
		s := sim.New(c, pointerDriver(cfg))
		for _, metric := range metrics.DefaultMetrics() {
			s.AddMetric(metric)
		}
		sc := simConfig(cfg)
		sc.Dt = params["dt"]
		sc.ValidateState = true
		return s, sc, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := optim.NewGridSearch([]string{"dt", "spacing"}, [][]float64{sweepDt, sweepSpacing})
	best, value, trials, err := g.Search(ctx, build, sweepMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DT\tSPACING\t%s\n", strings.ToUpper(sweepMetric))
	for _, t := range trials {
		val := fmt.Sprintf("%.4f", t.Value)
		if t.Err != nil {
			val = "failed: " + t.Err.Error()
		}
		fmt.Fprintf(w, "%g\t%g\t%s\n", t.Params["dt"], t.Params["spacing"], val)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best == nil {
		return fmt.Errorf("no stable combination for %s", m.Name())
	}
	fmt.Printf("\nbest %s = %.4f at", sweepMetric, value)
	for _, name := range optim.ParamNames(best) {
		fmt.Printf(" %s=%g", name, best[name])
	}
	fmt.Println()
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tMATERIAL\tGRID\tCANVAS\tDURATION\tPOINTER")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		ptr := "-"
		if p.Pointer.Enabled {
			ptr = fmt.Sprintf("(%.0f, %.0f) frames %d-%d", p.Pointer.X, p.Pointer.Y, p.Pointer.Press, p.Pointer.Release)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fx%.0f\t%.1fs\t%s\n",
			name, p.Material, p.Layout(), p.Grid.CanvasWidth, p.Grid.CanvasHeight, p.Duration, ptr)
	}
	return w.Flush()
}

func listMaterials(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tMATERIAL\tMASS\tELASTICITY\tSTIFFNESS\tDAMPING\tAIR\tTEAR\tBEND")
	for i, m := range cloth.Materials() {
		p := m.Props()
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%.2f\t%.2f\t%.3f\t%.2f\t%.0f\t%.1f\n",
			i+1, m.Name(), p.Mass, p.Elasticity, p.Stiffness, p.Damping, p.AirFriction, p.TearDistance, p.BendStiffness)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	m, err := cfg.GetMaterial()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := automation.RunScenario(ctx, scenario, cfg, metrics.DefaultMetrics())
	if err != nil {
		return err
	}

	label := "scenario"
	if scenario.Name != "" {
		label = strings.Join(strings.Fields(scenario.Name), "-")
	}
	runID, err := st.Save(storage.RunInfo{
		Label:    label,
		Material: m,
		Layout:   cfg.Layout(),
		Seed:     cfg.Seed,
		Dt:       cfg.Dt,
		Duration: float64(scenario.TotalFrames()) * cfg.Dt,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	printMetrics(os.Stdout, result.Metrics)
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	c, cfg, err := buildCloth(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := sim.New(c, pointerDriver(cfg)).Run(ctx, simConfig(cfg))
	if err != nil {
		return err
	}

	svg := export.ClothToSVG(c, svgWidth, svgHeight)
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (t=%.2fs, %s)\n", outFile, c.Time(), c.ActiveMaterial().Name())

	if seriesFile != "" {
		energy := result.Series(func(f sim.Frame) float64 { return f.Energy })
		if err := os.WriteFile(seriesFile, []byte(export.SeriesToSVG(energy, svgWidth, svgHeight/2, "#00ff88")), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d samples)\n", seriesFile, len(energy))
	}
	return nil
}
