/*
 * ChatCLI - Command Line Interface for LLM interaction
 * Copyright (c) 2024 Edilson Freitas
 * License: MIT
 */

// Command gdbmi-dump reads a GDB/MI control-channel transcript, or
// (with -annotations) an older annotation-protocol console transcript,
// either from stdin or line by line in an interactive REPL, and prints
// each decoded event.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	prompt "github.com/c-bata/go-prompt"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/brasko/gdbmi/annotation"
	"github.com/brasko/gdbmi/command"
	"github.com/brasko/gdbmi/facade"
	"github.com/brasko/gdbmi/internal/config"
	"github.com/brasko/gdbmi/internal/logging"
	"github.com/brasko/gdbmi/internal/metrics"
	"github.com/brasko/gdbmi/mi"
)

func main() {
	replMode := flag.Bool("repl", false, "read transcript lines interactively instead of from stdin")
	annotationsMode := flag.Bool("annotations", false, "read an annotation-protocol console transcript instead of MI")
	metricsPort := flag.Int("metrics-port", 0, "serve Prometheus metrics on this port (0 disables)")
	flag.Parse()

	logger, err := logging.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gdbmi-dump: could not initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	cfg := config.New()
	if err := cfg.Load(); err != nil {
		logger.Warn("config load failed, continuing with defaults and environment", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	handleGracefulShutdown(cancel, logger)

	var metricsServer *metrics.Server
	if *metricsPort != 0 {
		metricsServer = metrics.NewServer(*metricsPort, logger)
		metricsServer.Start()
		defer metricsServer.Stop()
	}

	colorize := term.IsTerminal(int(os.Stdout.Fd()))
	dumper := newDumper(os.Stdout, colorize)

	if *annotationsMode {
		runAnnotations(ctx, cfg, dumper, metricsServer != nil, logger)
		return
	}

	f := facade.New(facade.Callbacks{
		OnStream:     dumper.stream,
		OnAsync:      dumper.async,
		OnResult:     dumper.result,
		OnPrompt:     dumper.prompt,
		OnParseError: dumper.parseError,
	})
	if metricsServer != nil {
		f.SetMetrics(metrics.NewParser())
	}

	if *replMode && term.IsTerminal(int(os.Stdin.Fd())) {
		runREPL(f, logger)
		return
	}

	runStream(ctx, f, os.Stdin, logger)
}

// runAnnotations drives the sideband annotation-protocol parser
// instead of the MI façade. Any annotation names configured via
// config.KeyAnnotationTableFile are wired into the parser's ExtraNames
// so they classify as Extension rather than Unknown.
func runAnnotations(ctx context.Context, cfg *config.Manager, d *dumper, withMetrics bool, logger *zap.Logger) {
	p := annotation.NewParser(d.annotation)
	if ext := cfg.AnnotationTable(); ext != nil {
		p.ExtraNames = ext.Names
	}
	if withMetrics {
		p.Metrics = metrics.NewAnnotation()
	}

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			p.Flush()
			return
		default:
		}

		n, err := os.Stdin.Read(buf)
		if n > 0 {
			p.PushBytes(buf[:n])
		}
		if err == io.EOF {
			p.Flush()
			return
		}
		if err != nil {
			logger.Error("read failed", zap.Error(err))
			p.Flush()
			return
		}
	}
}

func runStream(ctx context.Context, f *facade.Facade, r io.Reader, logger *zap.Logger) {
	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			f.Flush()
			return
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			if perr := f.PushBytes(buf[:n]); perr != nil {
				logger.Error("push bytes failed", zap.Error(perr))
				return
			}
		}
		if err == io.EOF {
			f.Flush()
			return
		}
		if err != nil {
			logger.Error("read failed", zap.Error(err))
			f.Flush()
			return
		}
	}
}

func runREPL(f *facade.Facade, logger *zap.Logger) {
	fmt.Println("gdbmi-dump interactive mode. Enter MI lines, Ctrl-D to quit.")
	for {
		line := prompt.Input("mi> ", noopCompleter)
		if line == "" {
			continue
		}
		if err := f.PushBytes([]byte(line + "\n")); err != nil {
			logger.Error("push bytes failed", zap.Error(err))
			return
		}
	}
}

func noopCompleter(prompt.Document) []prompt.Suggest { return nil }

type dumper struct {
	w        *bufio.Writer
	colorize bool
}

func newDumper(w io.Writer, colorize bool) *dumper {
	return &dumper{w: bufio.NewWriter(w), colorize: colorize}
}

func (d *dumper) stream(rec mi.StreamRecord) {
	fmt.Fprintf(d.w, "stream[%d]: %s\n", rec.Kind, rec.Text)
	d.w.Flush()
}

func (d *dumper) async(rec mi.AsyncRecord) {
	fmt.Fprintf(d.w, "async: class=%s token=%q\n", rec.ClassName, rec.Token)
	d.w.Flush()
}

// result renders rec as a table via command.Render when it decodes
// cleanly as one of the kinds Render covers and stdout is a terminal;
// otherwise it falls back to printing the bare result class. The
// façade has no notion of which command produced rec, so every
// renderable kind is tried in turn and the first successful decode
// wins.
func (d *dumper) result(rec mi.ResultRecord) {
	if d.colorize {
		if out, ok := renderResult(rec); ok {
			fmt.Fprint(d.w, out)
			d.w.Flush()
			return
		}
	}
	fmt.Fprintf(d.w, "result: class=%d\n", rec.Class)
	d.w.Flush()
}

func renderResult(rec mi.ResultRecord) (string, bool) {
	if cmd, err := command.Decoder{}.Decode(command.KindBreakInfo, rec); err == nil {
		return command.RenderBreakInfo(cmd.BreakInfo), true
	}
	if cmd, err := command.Decoder{}.Decode(command.KindSourceFiles, rec); err == nil {
		return command.RenderSourceFiles(cmd.SourceFiles), true
	}
	return "", false
}

func (d *dumper) annotation(o annotation.Output) {
	switch o.Kind {
	case annotation.OutputConsole:
		fmt.Fprint(d.w, o.ConsoleText)
	case annotation.OutputAnnotationEvent:
		fmt.Fprintf(d.w, "\nannotation: name=%q text=%q\n", o.Annotation.Name, o.Annotation.Text)
	}
	d.w.Flush()
}

func (d *dumper) prompt() {
	fmt.Fprintln(d.w, "(gdb)")
	d.w.Flush()
}

func (d *dumper) parseError(info mi.ParseErrorInfo) {
	if d.colorize {
		fmt.Fprintf(d.w, "\x1b[31mparse error\x1b[0m: token=%q pos=%d-%d\n", info.Token, info.Pos.Start, info.Pos.End)
	} else {
		fmt.Fprintf(d.w, "parse error: token=%q pos=%d-%d\n", info.Token, info.Pos.Start, info.Pos.End)
	}
	d.w.Flush()
}

func handleGracefulShutdown(cancel context.CancelFunc, logger *zap.Logger) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-signals
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()
}
