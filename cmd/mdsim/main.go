package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/san-kum/mdsim/internal/config"
	"github.com/san-kum/mdsim/internal/metrics"
	"github.com/san-kum/mdsim/internal/session"
	"github.com/san-kum/mdsim/internal/storage"
	"github.com/san-kum/mdsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	schemeName string
	thermoName string
	dt         float64
	skin       float64
	steps      int
	seed       int64
	kT         float64
	gamma      float64
	particles  int
	frameRate  int
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mdsim",
		Short: "molecular dynamics integrator lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(
				tint.NewHandler(os.Stderr, &tint.Options{
					Level:      level,
					TimeFormat: time.Kitchen,
				}),
			))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mdsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run an integration",
		RunE:  runSimulation,
	}
	addSessionFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", 1000, "number of integration steps")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal view",
		RunE:  runLive,
	}
	addSessionFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, initCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&schemeName, "scheme", "", "integration scheme")
	cmd.Flags().StringVar(&thermoName, "thermostat", "", "thermostat kind")
	cmd.Flags().Float64Var(&dt, "dt", 0, "time step")
	cmd.Flags().Float64Var(&skin, "skin", 0, "neighbor list skin")
	cmd.Flags().Int64Var(&seed, "seed", 0, "thermostat seed")
	cmd.Flags().Float64Var(&kT, "kt", 0, "thermostat temperature")
	cmd.Flags().Float64Var(&gamma, "gamma", 0, "thermostat friction")
	cmd.Flags().IntVar(&particles, "particles", 0, "particle count")
}

// resolveConfig merges preset, config file, and explicit flags.
func resolveConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if schemeName != "" {
		cfg.Scheme = schemeName
	}
	if thermoName != "" {
		cfg.Thermostat = thermoName
	}
	if dt > 0 {
		cfg.TimeStep = dt
	}
	if skin > 0 {
		cfg.Skin = skin
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if kT > 0 {
		cfg.Thermo.KT = kT
	}
	if gamma > 0 {
		cfg.Thermo.Gamma = gamma
	}
	if particles > 0 {
		cfg.Particles.Count = particles
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	sess, field, err := buildSession(cfg)
	if err != nil {
		return err
	}

	temp := metrics.NewKineticTemperature()
	drift := metrics.NewEnergyDrift(field)
	sess.AddObserver(temp)
	sess.AddObserver(drift)

	slog.Info("starting run",
		"scheme", cfg.Scheme,
		"thermostat", cfg.Thermostat,
		"steps", steps,
		"particles", sess.Particles().Len(),
		"dt", cfg.TimeStep)

	start := time.Now()
	runErr := sess.Run(context.Background(), steps, session.RunOpts{})
	elapsed := time.Since(start)

	if runErr != nil {
		slog.Error("run faulted", "state", sess.State(), "err", runErr)
		return runErr
	}
	slog.Info("run finished", "elapsed", elapsed, "sim_time", sess.Time())

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(storage.RunMetadata{
		Scheme:     cfg.Scheme,
		Thermostat: cfg.Thermostat,
		Seed:       cfg.Seed,
		TimeStep:   cfg.TimeStep,
		Steps:      steps,
		Particles:  sess.Particles().Len(),
		Observables: map[string]float64{
			temp.Name():  temp.Value(),
			drift.Name(): drift.Value(),
		},
	}, drift.History)
	if err != nil {
		return err
	}

	fmt.Printf("run saved: %s\n\n", runID)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "kinetic temperature\t%.6f\n", temp.Value())
	fmt.Fprintf(w, "energy drift\t%.6g\n", drift.Value())
	w.Flush()

	if len(drift.History) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(drift.History,
			asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption("total energy")))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	sess, _, err := buildSession(cfg)
	if err != nil {
		return err
	}
	return viz.RunLive(sess, cfg.Scheme, frameRate)
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCHEME\tTHERMOSTAT\tSTEPS\tPARTICLES\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.Scheme, r.Thermostat, r.Steps, r.Particles,
			r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}
