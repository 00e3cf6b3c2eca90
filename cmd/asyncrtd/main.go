// Command asyncrtd is a small demonstration harness for package asyncrt: it
// wires up an executor, spawns a handful of futures built from leaf and
// combinator constructors, and prints their outcomes once the executor has
// run them all to completion.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/joeycumines/asyncrt"
	"github.com/joeycumines/asyncrt/leaf"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "asyncrtd",
		Short:   "Demo harness for the asyncrt cooperative runtime",
		Version: version,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Spawn a demo pipeline and run it to completion",
		RunE:  runDemo,
	}
	runCmd.Flags().String("config", "", "path to a YAML config file (optional)")
	runCmd.Flags().Duration("sleep", 200*time.Millisecond, "duration for the demo timer future")
	runCmd.Flags().Bool("metrics", false, "serve prometheus metrics on --metrics-addr while the demo runs")
	runCmd.Flags().String("metrics-addr", ":2112", "address for the metrics HTTP server")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("asyncrtd v%s\n", version)
		},
	}

	rootCmd.AddCommand(runCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	sleepFor, _ := cmd.Flags().GetDuration("sleep")
	metricsEnabled, _ := cmd.Flags().GetBool("metrics")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	cfg := asyncrt.DefaultConfig()
	if configPath != "" {
		loaded, err := asyncrt.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	cfg.MetricsEnabled = metricsEnabled || cfg.MetricsEnabled

	logger := asyncrt.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ex, err := asyncrt.NewExecutor(cfg, logger)
	if err != nil {
		return fmt.Errorf("new executor: %w", err)
	}

	if cfg.MetricsEnabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			printInfo(fmt.Sprintf("metrics listening on http://localhost%s/metrics", metricsAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				printError(fmt.Errorf("metrics server: %w", err))
			}
		}()
	}

	printInfo(fmt.Sprintf("sleeping %s, alongside a join of a %s timer and an immediate value", sleepFor, sleepFor/2))

	pipeline := asyncrt.Then(
		leaf.Sleep(sleepFor),
		asyncrt.New(func(self *asyncrt.Future, _ *asyncrt.Reactor, _ asyncrt.Waker) asyncrt.State {
			self.Ok = "first timer fired"
			return asyncrt.Completed
		}),
	)

	joined := asyncrt.Join(leaf.Sleep(sleepFor/2), leaf.Value("immediate"))

	if err := ex.Spawn(pipeline); err != nil {
		return fmt.Errorf("spawn pipeline: %w", err)
	}
	if err := ex.Spawn(joined.Future); err != nil {
		return fmt.Errorf("spawn join: %w", err)
	}

	ex.Run()

	reportOutcome("then", pipeline)
	reportOutcome("join", joined.Future)

	if err := ex.Destroy(); err != nil {
		return fmt.Errorf("destroy executor: %w", err)
	}
	return nil
}

func reportOutcome(label string, fut *asyncrt.Future) {
	switch {
	case fut.Errcode != asyncrt.FutureSuccess:
		printError(fmt.Errorf("%s failed: errcode %d", label, fut.Errcode))
	default:
		printSuccess(fmt.Sprintf("%s completed: %v", label, fut.Ok))
	}
}

var (
	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

func printInfo(msg string)    { infoColor.Printf("[INFO] %s\n", msg) }
func printSuccess(msg string) { successColor.Printf("[OK] %s\n", msg) }
func printError(err error)    { errorColor.Printf("[ERROR] %s\n", err.Error()) }
