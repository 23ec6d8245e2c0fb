package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/jesusroa1/sims/sim"
	"github.com/jesusroa1/sims/sim/export"
	"github.com/jesusroa1/sims/sim/render"
)

var (
	// CLI flags shared by both engines
	seed          int64  // Seed for the instance-owned random source
	unseeded      bool   // Draw the seed from the wall clock instead (non-reproducible)
	logLevel      string // Log verbosity level
	outDir        string // Directory for ticks.csv / orders.csv (empty = no CSV export)
	dbPath        string // SQLite results database path (empty = no database sink)
	scenariosFile string // YAML file holding named scenario presets
	scenarioName  string // Scenario preset to apply on top of the flags

	// CLI flags for the single-queue throughput engine
	hours        float64 // Simulation horizon in hours
	tickMinutes  int     // Minutes per tick
	slaHours     float64 // Max dwell (hours) still counted on-time
	arrivalMean  float64 // Order arrivals per hour, Normal mean
	arrivalStd   float64 // Order arrivals per hour, Normal std
	capacityMean float64 // Picking capacity per hour, Normal mean
	capacityStd  float64 // Picking capacity per hour, Normal std
	showChart    bool    // Print the ASCII backlog chart after the run

	// CLI flags for the worker-pool lifecycle engine
	ticks        int     // Simulation horizon in ticks
	workers      int     // Worker pool size
	arrivalProb  float64 // Chance of one new order per tick
	pickTicks    int     // Pick stage duration, tick-units
	stagingTicks int     // Staging stage duration, tick-units
	shipTicks    int     // Ship stage duration, tick-units
	slaTicks     int     // Max dwell (ticks) still counted on-time
	showBoard    bool    // Print the ASCII warehouse board after the run
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "sims",
	Short: "Discrete-time simulator for warehouse order flow",
	Long: `Simulates minute-by-minute order flow through a small warehouse.

Two engines are available: "throughput" drains a single FIFO queue with a
stochastic picking capacity, and "lifecycle" walks each order through
pick/staging/ship stages with a fixed worker pool.`,
	SilenceUsage: true,
}

// throughputCmd runs the single-queue capacity model.
var throughputCmd = &cobra.Command{
	Use:   "throughput",
	Short: "Run the single-queue throughput simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(); err != nil {
			return err
		}

		cfg := sim.DefaultThroughputConfig()
		cfg.Hours = hours
		cfg.TickMinutes = tickMinutes
		cfg.SLAHours = slaHours
		cfg.ArrivalMeanPerHour = arrivalMean
		cfg.ArrivalStdPerHour = arrivalStd
		cfg.PickMeanPerHour = capacityMean
		cfg.PickStdPerHour = capacityStd
		cfg.Seed = &seed
		if scenarioName != "" {
			if err := applyScenario(scenariosFile, scenarioName, &cfg); err != nil {
				return err
			}
		}
		if unseeded {
			cfg.Seed = nil
		}

		m, err := sim.NewThroughputModel(cfg)
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logrus.Infof("Starting throughput simulation: horizon=%vh tick=%dmin arrivals=%v±%v/h capacity=%v±%v/h",
			cfg.Hours, cfg.TickMinutes, cfg.ArrivalMeanPerHour, cfg.ArrivalStdPerHour,
			cfg.PickMeanPerHour, cfg.PickStdPerHour)

		m.Run()
		m.History().PrintSummary()

		if showChart {
			fmt.Print(render.BacklogChart(m.History().Ticks))
		}
		return writeOutputs("throughput", cfg, cfg.Seed, m.History())
	},
}

// lifecycleCmd runs the worker-pool stage scheduler.
var lifecycleCmd = &cobra.Command{
	Use:   "lifecycle",
	Short: "Run the worker-pool lifecycle simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(); err != nil {
			return err
		}

		cfg := sim.DefaultLifecycleConfig()
		cfg.Ticks = ticks
		cfg.Workers = workers
		cfg.ArrivalProbability = arrivalProb
		cfg.Durations = sim.StageDurations{Pick: pickTicks, Staging: stagingTicks, Ship: shipTicks}
		cfg.SLATicks = slaTicks
		cfg.Seed = &seed
		if scenarioName != "" {
			if err := applyScenario(scenariosFile, scenarioName, &cfg); err != nil {
				return err
			}
		}
		if unseeded {
			cfg.Seed = nil
		}

		m, err := sim.NewLifecycleModel(cfg)
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logrus.Infof("Starting lifecycle simulation: ticks=%d workers=%d p(arrival)=%v durations=%d/%d/%d",
			cfg.Ticks, cfg.Workers, cfg.ArrivalProbability,
			cfg.Durations.Pick, cfg.Durations.Staging, cfg.Durations.Ship)

		m.Run()
		m.History().PrintSummary()

		if showBoard {
			fmt.Print(render.Board(m.Board()))
		}
		return writeOutputs("lifecycle", cfg, cfg.Seed, m.History())
	},
}

func setupLogging() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logrus.SetLevel(level)
	return nil
}

// writeOutputs runs the export collaborators selected by --out and --db.
func writeOutputs(label string, cfg any, cfgSeed *int64, h *sim.History) error {
	if outDir != "" {
		if err := export.WriteTables(outDir, h); err != nil {
			return err
		}
		logrus.Infof("Wrote %s and %s under %s", export.TickCSVName, export.OrderCSVName, outDir)
	}
	if dbPath != "" {
		runID, err := export.WriteDB(dbPath, export.Run{Label: label, Seed: cfgSeed, Config: cfg}, h)
		if err != nil {
			return err
		}
		logrus.Infof("Recorded run %d in %s", runID, dbPath)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int64Var(&seed, "seed", 42, "Random seed for reproducible runs")
	pf.BoolVar(&unseeded, "unseeded", false, "Seed from the wall clock instead of --seed (non-reproducible)")
	pf.StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	pf.StringVar(&outDir, "out", "", "Directory to write ticks.csv and orders.csv into")
	pf.StringVar(&dbPath, "db", "", "SQLite database to record the run into")
	pf.StringVar(&scenariosFile, "scenarios-file", "scenarios.yaml", "YAML file with named scenario presets")
	pf.StringVar(&scenarioName, "scenario", "", "Scenario preset to apply on top of flag values")

	tf := throughputCmd.Flags()
	tf.Float64Var(&hours, "hours", 24.0, "Simulation horizon in hours")
	tf.IntVar(&tickMinutes, "tick-minutes", 1, "Minutes per tick")
	tf.Float64Var(&slaHours, "sla-hours", 4.0, "On-time SLA threshold in hours")
	tf.Float64Var(&arrivalMean, "arrival-mean", 300.0, "Mean order arrivals per hour")
	tf.Float64Var(&arrivalStd, "arrival-std", 60.0, "Std dev of order arrivals per hour")
	tf.Float64Var(&capacityMean, "capacity-mean", 300.0, "Mean picking capacity per hour")
	tf.Float64Var(&capacityStd, "capacity-std", 60.0, "Std dev of picking capacity per hour")
	tf.BoolVar(&showChart, "chart", false, "Print the ASCII backlog chart")

	lf := lifecycleCmd.Flags()
	lf.IntVar(&ticks, "ticks", 360, "Simulation horizon in ticks")
	lf.IntVar(&workers, "workers", 3, "Worker pool size")
	lf.Float64Var(&arrivalProb, "arrival-prob", 0.3, "Probability of one new order per tick")
	lf.IntVar(&pickTicks, "pick-ticks", 5, "Pick stage duration in tick-units")
	lf.IntVar(&stagingTicks, "staging-ticks", 3, "Staging stage duration in tick-units")
	lf.IntVar(&shipTicks, "ship-ticks", 4, "Ship stage duration in tick-units")
	lf.IntVar(&slaTicks, "sla-ticks", 60, "On-time SLA threshold in ticks")
	lf.BoolVar(&showBoard, "board", false, "Print the ASCII warehouse board at the end of the run")

	rootCmd.AddCommand(throughputCmd)
	rootCmd.AddCommand(lifecycleCmd)
}
