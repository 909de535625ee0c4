package config

import (
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
)

// FlagDef holds metadata for a single flag (short + long names, default,
// description). The default's dynamic type doubles as the flag type.
type FlagDef struct {
	Short       string
	Long        string
	Default     interface{}
	Description string
}

// FlagGroup is a named category containing related flags.
type FlagGroup struct {
	Name  string
	Flags []FlagDef
}

// HelpFormatter holds the tool info and ordered flag groups for custom
// help rendering.
type HelpFormatter struct {
	ToolName    string
	Description string
	Groups      []*FlagGroup
}

func addBoolFlag(group *FlagGroup, p *bool, short, long string, value bool, usage string) {
	if short != "" {
		flag.BoolVar(p, short, value, usage)
	}
	if long != "" {
		flag.BoolVar(p, long, value, usage)
	}
	group.Flags = append(group.Flags, FlagDef{Short: short, Long: long, Default: value, Description: usage})
}

func addStringFlag(group *FlagGroup, p *string, short, long string, value string, usage string) {
	if short != "" {
		flag.StringVar(p, short, value, usage)
	}
	if long != "" {
		flag.StringVar(p, long, value, usage)
	}
	group.Flags = append(group.Flags, FlagDef{Short: short, Long: long, Default: value, Description: usage})
}

func addIntFlag(group *FlagGroup, p *int, short, long string, value int, usage string) {
	if short != "" {
		flag.IntVar(p, short, value, usage)
	}
	if long != "" {
		flag.IntVar(p, long, value, usage)
	}
	group.Flags = append(group.Flags, FlagDef{Short: short, Long: long, Default: value, Description: usage})
}

// RegisterFlags creates all flag groups, registers every flag with the
// standard flag package, and returns a populated HelpFormatter.
func RegisterFlags(cfg *Config) *HelpFormatter {
	formatter := &HelpFormatter{
		ToolName:    "wpcheck",
		Description: "WordPress and parked-domain probing tool",
	}

	// INPUT
	input := &FlagGroup{Name: "INPUT"}
	addStringFlag(input, &cfg.InputFile, "i", "input", "", "Domain list file, one domain per line (default: stdin)")
	formatter.Groups = append(formatter.Groups, input)

	// OUTPUT
	output := &FlagGroup{Name: "OUTPUT"}
	addStringFlag(output, &cfg.OutputFile, "o", "output", "", "Report file (default: stdout)")
	addBoolFlag(output, &cfg.JSONOutput, "j", "json", false, "Write JSON lines instead of CSV (includes enrichment fields)")
	addBoolFlag(output, &cfg.StoreEvidence, "se", "store-evidence", false, "Store fetched pages to disk as classification evidence")
	addStringFlag(output, &cfg.EvidenceDir, "sed", "evidence-dir", "evidence", "Directory for stored evidence pages")
	formatter.Groups = append(formatter.Groups, output)

	// PROBES
	probes := &FlagGroup{Name: "PROBES"}
	addBoolFlag(probes, &cfg.TechDetect, "td", "tech-detect", false, "Enable technology detection using wappalyzer")
	addBoolFlag(probes, &cfg.DetectCDN, "cdn", "detect-cdn", false, "Detect CDN and parking-provider edges from response headers")
	formatter.Groups = append(formatter.Groups, probes)

	// CONFIGURATION
	configuration := &FlagGroup{Name: "CONFIGURATION"}
	addBoolFlag(configuration, &cfg.FollowRedirects, "fr", "follow-redirects", true, "Follow redirects")
	addIntFlag(configuration, &cfg.MaxRedirects, "maxr", "max-redirects", 10, "Max redirects")
	addStringFlag(configuration, &cfg.UserAgent, "ua", "user-agent", "", "Custom User-Agent header")
	addBoolFlag(configuration, &cfg.RandomUserAgent, "rua", "random-user-agent", false, "Use random User-Agent from pool")
	addBoolFlag(configuration, &cfg.Insecure, "k", "insecure", false, "Skip TLS certificate verification")
	addBoolFlag(configuration, &cfg.HTTP3, "", "http3", false, "Try HTTPS candidates over HTTP/3 first, falling back to TCP")
	formatter.Groups = append(formatter.Groups, configuration)

	// RATE-LIMIT
	rateLimit := &FlagGroup{Name: "RATE-LIMIT"}
	addIntFlag(rateLimit, &cfg.Timeout, "t", "timeout", 7, "Per-request timeout in seconds")
	addIntFlag(rateLimit, &cfg.Concurrency, "c", "concurrency", 20, "Max concurrent domain probes")
	addIntFlag(rateLimit, &cfg.RateLimit, "rl", "rate-limit", 0, "Global requests per second (0 = unlimited)")
	formatter.Groups = append(formatter.Groups, rateLimit)

	// DEBUG
	debug := &FlagGroup{Name: "DEBUG"}
	addBoolFlag(debug, &cfg.Debug, "d", "debug", false, "Debug mode (verbose per-candidate logging to stderr)")
	addBoolFlag(debug, &cfg.Silent, "", "silent", false, "Silent mode (errors only, no progress)")
	addStringFlag(debug, &cfg.DebugLogFile, "", "debug-log", "", "Write detailed debug logs to file")
	formatter.Groups = append(formatter.Groups, debug)

	// MISCELLANEOUS
	misc := &FlagGroup{Name: "MISCELLANEOUS"}
	addBoolFlag(misc, &cfg.Version, "v", "version", false, "Show version information")
	formatter.Groups = append(formatter.Groups, misc)

	return formatter
}

// PrintUsage writes the grouped help output to w
func (h *HelpFormatter) PrintUsage(w io.Writer) {
	fmt.Fprintf(w, "%s - %s\n\n", h.ToolName, h.Description)
	fmt.Fprintf(w, "Usage:\n  %s [flags]\n\nFlags:\n", h.ToolName)

	for _, group := range h.Groups {
		fmt.Fprintf(w, "\n%s:\n", group.Name)

		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		for _, f := range group.Flags {
			fmt.Fprintf(tw, "   %s%s\t%s\n", formatFlagName(f), formatFlagType(f), formatFlagDesc(f))
		}
		tw.Flush()
	}
}

func formatFlagName(f FlagDef) string {
	if f.Short != "" && f.Long != "" {
		return fmt.Sprintf("-%s, -%s", f.Short, f.Long)
	}
	if f.Short != "" {
		return "-" + f.Short
	}
	return "-" + f.Long
}

func formatFlagType(f FlagDef) string {
	switch f.Default.(type) {
	case string:
		return " string"
	case int:
		return " int"
	}
	return ""
}

func formatFlagDesc(f FlagDef) string {
	desc := f.Description
	switch v := f.Default.(type) {
	case bool:
		if v {
			desc += " (default true)"
		}
	case int:
		if v != 0 {
			desc += fmt.Sprintf(" (default %d)", v)
		}
	case string:
		if v != "" {
			desc += fmt.Sprintf(" (default %q)", v)
		}
	}
	return desc
}
