// Command lecturenotes is the headless CLI harness: it starts a single
// recording session, drives the Engine's tick loop at a fixed cadence,
// and produces a summarized note on interrupt. A GUI shell would instead
// link the hostbridge package directly.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tphakala/lecturenotes/internal/conf"
	"github.com/tphakala/lecturenotes/internal/engine"
	"github.com/tphakala/lecturenotes/internal/logging"
)

const defaultSubject = "CLI_Session_001"

func main() {
	root := rootCommand()
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func rootCommand() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "lecturenotes",
		Short: "Record and summarize a lecture session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(subject)
		},
	}
	cmd.Flags().StringVar(&subject, "subject", defaultSubject, "session subject recorded against new notes")
	return cmd
}

func run(subject string) error {
	settings, err := conf.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	logging.Init()
	logger := logging.ForService("cli")

	e, err := engine.New(settings.Engine.DBPath, settings.Engine.ModelsDir)
	if err != nil {
		return fmt.Errorf("starting engine: %w", err)
	}
	defer func() {
		if err := e.Close(); err != nil {
			logger.Warn("engine close failed", "error", err)
		}
	}()

	if err := e.StartRecording(subject); err != nil {
		return fmt.Errorf("starting recording: %w", err)
	}
	logger.Info("recording started", "subject", subject)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tickInterval := time.Duration(settings.Engine.TickIntervalMillis) * time.Millisecond
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down, summarizing session")
			summary, err := e.StopRecordingAndSummarize(nil)
			if err != nil {
				return fmt.Errorf("summarizing on shutdown: %w", err)
			}
			fmt.Println(summary)
			return nil
		case <-ticker.C:
			e.Tick()
		case <-heartbeat.C:
			logger.Info("heartbeat", "state", e.State().String())
		}
	}
}
