// cmd/loan-assistant/main.go
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"loan-assistant/internal/catalog"
	"loan-assistant/internal/common/auth"
	"loan-assistant/internal/common/config"
	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/common/observability"
	"loan-assistant/internal/common/scheduler"
	"loan-assistant/internal/conversation"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (defaults to configs/config.yaml)")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting loan assistant...", zap.String("environment", cfg.App.Environment))

	obs := observability.New(observability.Options{
		ServiceName: cfg.Observability.ServiceName,
		TraceStdout: cfg.Observability.TraceStdout,
	}, log)
	defer obs.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cat, closeCatalog, err := catalog.Open(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("catalog open failed", zap.Error(err))
	}
	defer closeCatalog()

	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			zapLog.Info("Metrics server listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zapLog.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	sched := scheduler.NewRealtime()
	manager := conversation.NewManager(conversation.Deps{
		Identity:      auth.FromConfig(cfg.Identity),
		Scheduler:     sched,
		Logger:        log,
		Config:        cfg,
		Observability: obs,
		Navigator: conversation.NavigatorFunc(func(_ context.Context, to conversation.Destination) error {
			fmt.Printf("→ [navigate] %s\n", to)
			return nil
		}),
	}.WithCatalog(cat))

	term := newTerminal(os.Stdout)
	opened := make(chan *conversation.Engine, 1)
	sched.Post(func() {
		engine, err := manager.Open(ctx, nil)
		if err != nil {
			zapLog.Error("Session open failed", zap.Error(err))
			cancel()
			return
		}
		engine.OnSnapshot(term.render)
		term.render(engine.Snapshot())
		opened <- engine
	})

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			zapLog.Error("Scheduler stopped", zap.Error(err))
		}
	}()

	// Sessions are only touched from the scheduler thread, so teardown waits
	// for the loop to exit before closing whatever is left.
	defer func() {
		cancel()
		<-stopped
		manager.CloseAll()
	}()

	var engine *conversation.Engine
	select {
	case engine = <-opened:
	case <-ctx.Done():
		return
	}

	lines := make(chan string)
	go readLines(os.Stdin, lines)

	for {
		select {
		case <-ctx.Done():
			zapLog.Info("Shutdown signal received, closing session...")
			return
		case line, ok := <-lines:
			if !ok || strings.TrimSpace(line) == "/quit" {
				runOnLoop(ctx, sched, func() { manager.Close(engine.ID()) })
				zapLog.Info("Loan assistant stopped")
				return
			}
			sched.Post(func() { handleLine(engine, term, line) })
		}
	}
}

// runOnLoop runs fn on the scheduler thread and waits for it. It reports
// false if ctx ends first.
func runOnLoop(ctx context.Context, sched *scheduler.Scheduler, fn func()) bool {
	done := make(chan struct{})
	sched.Post(func() {
		fn()
		close(done)
	})
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

func readLines(r io.Reader, out chan<- string) {
	defer close(out)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		out <- scanner.Text()
	}
}

// handleLine runs on the scheduler thread.
func handleLine(engine *conversation.Engine, term *terminal, line string) {
	line = strings.TrimSpace(line)
	cmd, arg, _ := strings.Cut(line, " ")

	var err error
	switch cmd {
	case "":
		return
	case "/upload":
		err = engine.Upload(arg)
	case "/dismiss":
		if !engine.Dismiss() {
			term.notice("nothing to dismiss")
		}
	case "/restart":
		err = engine.Restart()
	case "/replies":
		term.notice("quick replies: " + strings.Join(engine.QuickReplies(), " | "))
	case "/download":
		err = download(engine, arg)
		if err == nil {
			term.notice("sanction letter saved")
		}
	case "/help":
		term.notice("commands: /upload [file] /dismiss /download [path] /restart /replies /quit")
	default:
		err = engine.Submit(line)
	}

	if err != nil {
		var se *apperrors.StandardError
		if errors.As(err, &se) {
			term.notice(fmt.Sprintf("%s: %s", se.Code, se.Message))
			return
		}
		term.notice(err.Error())
	}
}

func download(engine *conversation.Engine, path string) error {
	letter, ok := engine.SanctionLetter()
	if !ok {
		return apperrors.NewValidationError("no sanction letter yet")
	}
	if path == "" {
		path = letter.ID + ".txt"
	}
	return os.WriteFile(path, []byte(letter.Render()), 0644)
}
