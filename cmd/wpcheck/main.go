package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"wpcheck/internal/config"
	"wpcheck/internal/output"
	"wpcheck/internal/probe"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cfg.Close()

	// If no arguments provided and nothing is piped to stdin, show help
	if flag.NFlag() == 0 && cfg.InputFile == "" && !config.HasPipedData() {
		flag.Usage()
		os.Exit(0)
	}

	// Graceful shutdown: each outcome is independently complete, so
	// cancelling mid-run leaves a valid partial report.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cfg.Logger.Info("shutting down gracefully...")
		cancel()
	}()

	// Get input reader
	var inputReader io.Reader
	if cfg.InputFile != "" {
		file, err := os.Open(cfg.InputFile)
		if err != nil {
			cfg.Logger.Error("failed to open domain list", "file", cfg.InputFile, "error", err)
			os.Exit(1)
		}
		defer file.Close()
		inputReader = file
	} else {
		inputReader = os.Stdin
	}

	// Get output writer
	var outputWriter io.Writer
	if cfg.OutputFile != "" {
		file, err := os.Create(cfg.OutputFile)
		if err != nil {
			cfg.Logger.Error("failed to create report file", "file", cfg.OutputFile, "error", err)
			os.Exit(1)
		}
		defer file.Close()
		outputWriter = file
	} else {
		outputWriter = os.Stdout
	}

	domains := readDomains(inputReader)
	if len(domains) == 0 {
		cfg.Logger.Error("no domains to check")
		os.Exit(1)
	}
	cfg.Logger.Info("loaded domains", "count", len(domains))

	var writer output.Writer
	if cfg.JSONOutput {
		writer = output.NewJSONLWriter(outputWriter)
	} else {
		csvWriter, err := output.NewCSVWriter(outputWriter)
		if err != nil {
			cfg.Logger.Error("failed to write report header", "error", err)
			os.Exit(1)
		}
		writer = csvWriter
	}

	prober, err := probe.NewProber(cfg)
	if err != nil {
		cfg.Logger.Error("failed to create prober", "error", err)
		os.Exit(1)
	}
	defer prober.Close()

	results := prober.ProcessDomains(ctx, domains, cfg.Concurrency)

	// Persistent status bar at the bottom of the terminal
	showProgress := !cfg.Silent && term.IsTerminal(int(os.Stderr.Fd()))
	var termHeight int
	if showProgress {
		_, termHeight, _ = term.GetSize(int(os.Stderr.Fd()))
		if termHeight > 0 {
			fmt.Fprintf(os.Stderr, "\033[1;%dr", termHeight-1)
			fmt.Fprintf(os.Stderr, "\033[1;1H")
			fmt.Fprintf(os.Stderr, "\033[s\033[%d;1H\033[K[0/%d] Starting...\033[u", termHeight, len(domains))
		}
	}

	summary := output.NewSummary()
	completed := 0

	for outcome := range results {
		completed++

		if err := writer.Write(outcome); err != nil {
			cfg.Logger.Error("failed to write outcome", "domain", outcome.Domain, "error", err)
		}
		summary.Add(outcome)

		// Progress signal: one line per completed probe
		if !cfg.Silent {
			finalURL := outcome.FinalURL
			if finalURL == "" {
				finalURL = "-"
			}
			fmt.Fprintf(os.Stderr, "[%s] %s -> %s\n", outcome.Status, outcome.Domain, finalURL)
		}

		if showProgress && termHeight > 0 {
			display := outcome.Domain
			if len(display) > 60 {
				display = display[:57] + "..."
			}
			fmt.Fprintf(os.Stderr, "\033[s\033[%d;1H\033[K[%d/%d] %s\033[u", termHeight, completed, len(domains), display)
		}
	}

	// Clean up terminal state
	if showProgress && termHeight > 0 {
		fmt.Fprintf(os.Stderr, "\033[r")
		fmt.Fprintf(os.Stderr, "\033[%d;1H\033[K", termHeight)
		fmt.Fprintf(os.Stderr, "\033[%d;1H", termHeight-1)
	}

	if !cfg.Silent {
		summary.Print(os.Stderr)
	}

	cfg.Logger.Info("probing completed",
		"domains", len(domains),
		"outcomes", summary.Total,
	)
}

// readDomains reads domain tokens from the input reader, skipping empty
// lines and comments.
func readDomains(reader io.Reader) []string {
	var domains []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			domains = append(domains, line)
		}
	}
	return domains
}
