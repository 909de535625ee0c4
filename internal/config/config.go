package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"wpcheck/pkg/version"
)

// Config holds the CLI configuration. It is built once at startup and
// treated as immutable afterward; every component receives it by
// reference.
type Config struct {
	InputFile  string
	OutputFile string
	JSONOutput bool

	Timeout         int // per-request timeout in seconds
	Concurrency     int // max concurrent domain probes
	FollowRedirects bool
	MaxRedirects    int
	MaxBodySize     int64
	RateLimit       int // global requests per second, 0 = unlimited

	UserAgent       string
	RandomUserAgent bool
	Insecure        bool
	HTTP3           bool

	TechDetect    bool
	DetectCDN     bool
	StoreEvidence bool
	EvidenceDir   string

	Silent       bool
	Debug        bool
	DebugLogFile string
	Version      bool

	Logger          *slog.Logger
	DebugLogger     *slog.Logger
	debugFileHandle *os.File
}

// New creates a Config with the system defaults: 7s per-request timeout
// and 20 concurrent probes.
func New() *Config {
	return &Config{
		Timeout:         7,
		Concurrency:     20,
		FollowRedirects: true,
		MaxRedirects:    10,
		MaxBodySize:     1 << 20, // 1 MiB read cap; classification only looks at the first 4000 chars
		EvidenceDir:     "evidence",
	}
}

// ParseFlags parses command-line flags into the config and sets up the
// structured logger.
func ParseFlags() (*Config, error) {
	cfg := New()

	formatter := RegisterFlags(cfg)
	flag.Usage = func() {
		formatter.PrintUsage(os.Stderr)
	}

	flag.Parse()

	if cfg.Version {
		fmt.Println(version.GetVersion())
		os.Exit(0)
	}

	if cfg.UserAgent != "" && cfg.RandomUserAgent {
		return nil, fmt.Errorf("-ua/--user-agent and -rua/--random-user-agent are mutually exclusive")
	}
	if cfg.Concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1")
	}
	if cfg.Timeout < 1 {
		return nil, fmt.Errorf("timeout must be at least 1 second")
	}

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	if cfg.Silent {
		logLevel = slog.LevelError
	}

	cfg.Logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if cfg.DebugLogFile != "" {
		debugFile, err := os.Create(cfg.DebugLogFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create debug log file: %v", err)
		}
		cfg.debugFileHandle = debugFile
		cfg.DebugLogger = slog.New(slog.NewTextHandler(debugFile, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		cfg.Logger.Info("debug logging enabled", "file", cfg.DebugLogFile)
	}

	return cfg, nil
}

// Close cleans up the config's resources.
func (c *Config) Close() error {
	if c.debugFileHandle != nil {
		return c.debugFileHandle.Close()
	}
	return nil
}

// HasPipedData checks if there is data being piped to stdin
func HasPipedData() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) == 0
}
