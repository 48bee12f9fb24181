// ============================================================================
// jobkitdemo CLI - Command Line Interface
// ============================================================================
//
// Package: internal/cli
// File: cli.go
// Purpose: Cobra-based command line interface wrapping jobkit.Scheduler
//
// Command Structure:
//   jobkitdemo                   # Root command
//   ├── run                      # Start a scheduler and feed it a workload
//   │   └── --config, -c        # Specify config file
//   ├── bench                    # Submit a batch of no-op tasks, report timing
//   └── --version                # Display version information
//
// Configuration Management:
//   Uses YAML format config file (default: configs/default.yaml)
//   Configuration items include:
//   - scheduler: worker count, shutdown mode
//   - metrics: Prometheus monitoring configuration
//   - bench: default task count for the bench command
//
// run Command:
//   Starts a scheduler and a synthetic workload generator, including:
//   1. Load config file
//   2. Create the jobkit.Scheduler
//   3. Start the Metrics HTTP server (if enabled)
//   4. Listen for system signals (SIGINT, SIGTERM)
//   5. Stop the scheduler using the configured shutdown mode
//
//   Examples:
//     ./jobkitdemo run
//     ./jobkitdemo run -c custom-config.yaml
//
// bench Command:
//   Submits a configurable number of trivial tasks and reports how long
//   the scheduler took to drain them.
//
//   Examples:
//     ./jobkitdemo bench --tasks 10000
//
// Signal Handling:
//   run captures SIGINT and SIGTERM and shuts the scheduler down using
//   the configured mode before exiting.
//
// Metrics Service:
//   If enabled in config, starts an HTTP server in its own goroutine:
//   - Default port: 9090
//   - Path: /metrics
//   - Format: Prometheus format
//
// ============================================================================

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joseph-gamedev/jobkit"
	"github.com/joseph-gamedev/jobkit/internal/metrics"
)

// Config is the complete jobkitdemo configuration structure, loaded from
// a YAML file and mapped through yaml tags.
type Config struct {
	Scheduler struct {
		Workers      uint32 `yaml:"workers"`
		ShutdownMode string `yaml:"shutdown_mode"`
	} `yaml:"scheduler"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"metrics"`

	Bench struct {
		Tasks int `yaml:"tasks"`
	} `yaml:"bench"`
}

var (
	configFile string
	log        = slog.Default()
)

// BuildCLI assembles the jobkitdemo command tree.
func BuildCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jobkitdemo",
		Short: "jobkitdemo: a demo harness for the jobkit worker pool",
		Long: `jobkitdemo drives a jobkit.Scheduler with a synthetic workload and
optionally exposes its Stats as Prometheus metrics.`,
		Version: "1.0.0",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "configs/default.yaml", "config file path")

	rootCmd.AddCommand(buildRunCommand())
	rootCmd.AddCommand(buildBenchCommand())

	return rootCmd
}

func buildRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start a scheduler and a synthetic workload generator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSystem()
		},
	}
	return cmd
}

func runSystem() error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	mode := shutdownMode(cfg.Scheduler.ShutdownMode)

	log.Info("starting scheduler", "workers", cfg.Scheduler.Workers, "shutdown_mode", mode)

	sched := jobkit.New(jobkit.Config{Workers: cfg.Scheduler.Workers})
	defer sched.Close()

	if cfg.Metrics.Enabled {
		collector := metrics.NewCollector(sched)
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			log.Info("starting metrics server", "addr", addr)
			if err := metrics.StartServer(cfg.Metrics.Port, collector); err != nil {
				log.Error("metrics server stopped", "error", err)
			}
		}()
	}

	var submitted atomic.Uint64
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				n := submitted.Add(1)
				sched.SubmitLabeled(fmt.Sprintf("demo-%d", n), func() {
					time.Sleep(time.Millisecond)
				})
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	close(stop)

	log.Info("received shutdown signal, stopping gracefully")
	sched.Stop(mode)

	stats := sched.GetStats()
	log.Info("scheduler stopped",
		"submitted", stats.Submitted,
		"completed", stats.Completed,
		"queued", stats.Queued,
	)
	return nil
}

func buildBenchCommand() *cobra.Command {
	var tasks int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Submit a batch of no-op tasks and report drain time",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(tasks)
		},
	}

	cmd.Flags().IntVar(&tasks, "tasks", 0, "number of tasks to submit (0 = use config default)")

	return cmd
}

func runBench(tasks int) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if tasks <= 0 {
		tasks = cfg.Bench.Tasks
	}
	if tasks <= 0 {
		tasks = 10000
	}

	sched := jobkit.New(jobkit.Config{Workers: cfg.Scheduler.Workers})
	defer sched.Close()

	log.Info("starting bench run", "tasks", tasks, "workers", cfg.Scheduler.Workers)

	start := time.Now()
	for i := 0; i < tasks; i++ {
		sched.Submit(func() {})
	}
	sched.WaitIdle()
	elapsed := time.Since(start)

	stats := sched.GetStats()
	fmt.Printf("submitted %d tasks across %d workers in %s (%.0f tasks/sec)\n",
		stats.Submitted, stats.WorkerCount, elapsed, float64(tasks)/elapsed.Seconds())

	return nil
}

func shutdownMode(s string) jobkit.Mode {
	if s == "cancel_pending" {
		return jobkit.CancelPending
	}
	return jobkit.Drain
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
