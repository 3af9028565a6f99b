// Package config parses and validates the analyzer configuration. Values are
// resolved with the priority: CLI flags > environment variables > YAML
// config file > defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/agbru/loganalyzer/internal/analysis"
	apperrors "github.com/agbru/loganalyzer/internal/errors"
	"github.com/agbru/loganalyzer/internal/ui"
)

// EnvPrefix is prepended to every environment variable the analyzer reads.
const EnvPrefix = "LOGANALYZER_"

// Report formats accepted by -format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Defaults.
const (
	DefaultOutputFile = "analysis_result.txt"
	DefaultDemoDir    = "demo_logs"
	DefaultDemoFiles  = 8
	DefaultDemoLines  = 2000
	DefaultTimeout    = 5 * time.Minute
	DefaultTheme      = "dark"
)

// CompletionShells lists the shells -completion accepts.
var CompletionShells = []string{"bash", "zsh", "fish"}

// DefaultExtensions lists the file suffixes picked up during discovery.
var DefaultExtensions = []string{".log", ".txt"}

// AppConfig aggregates the configuration of one analyzer run.
type AppConfig struct {
	// Dir is the folder to analyze. Empty, or a folder that does not exist,
	// means demo logs are generated into DemoDir and analyzed instead.
	Dir string
	// PoolSize is the number of workers in the concurrent pass.
	PoolSize int
	// Keywords are the literal substrings to count, in report order.
	Keywords []string
	// Extensions restricts discovery to files with these suffixes.
	Extensions []string
	// OutputFile receives the report. Empty disables the file.
	OutputFile string
	// Format is FormatText or FormatJSON.
	Format string
	// DemoDir, DemoFiles and DemoLines control demo log generation.
	DemoDir   string
	DemoFiles int
	DemoLines int
	// Timeout bounds the whole comparison.
	Timeout time.Duration
	// MaxLineSize is the longest accepted line in bytes.
	MaxLineSize int
	// MonitorInterval enables the periodic pool status report when > 0.
	MonitorInterval time.Duration
	// MetricsFile, when set, receives the Prometheus text exposition after the run.
	MetricsFile string
	// ConfigFile is the optional YAML file that was loaded.
	ConfigFile string
	// Theme names the color scheme of the terminal output and dashboard.
	Theme string

	// Completion names a shell whose completion script is printed instead
	// of running an analysis.
	Completion string

	Quiet   bool
	Verbose bool
	NoColor bool
	TUI     bool
	Version bool
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() AppConfig {
	return AppConfig{
		PoolSize:    DefaultPoolSize(),
		Keywords:    append([]string(nil), analysis.DefaultKeywords...),
		Extensions:  append([]string(nil), DefaultExtensions...),
		OutputFile:  DefaultOutputFile,
		Format:      FormatText,
		DemoDir:     DefaultDemoDir,
		DemoFiles:   DefaultDemoFiles,
		DemoLines:   DefaultDemoLines,
		Timeout:     DefaultTimeout,
		MaxLineSize: analysis.DefaultMaxLineSize,
		Theme:       DefaultTheme,
	}
}

// ParseConfig parses command-line arguments into an AppConfig.
//
// Besides flags, up to three positional arguments are accepted:
// "[dir [poolSize [keywords]]]". Each applies only when the corresponding
// flag is not given.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The arguments without the program name.
//   - errWriter: Destination for usage and parse errors.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp for -h, a ConfigError for invalid values.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	def := DefaultConfig()
	cfg := def

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] [dir [poolSize [keywords]]]\n\nFlags:\n", programName)
		fs.PrintDefaults()
	}

	var keywords, extensions string
	fs.StringVar(&cfg.Dir, "dir", def.Dir, "Folder containing .log/.txt files (demo logs are generated when empty or missing).")
	fs.IntVar(&cfg.PoolSize, "pool", def.PoolSize, "Number of workers in the concurrent pass.")
	fs.IntVar(&cfg.PoolSize, "p", def.PoolSize, "Number of workers (shorthand).")
	fs.StringVar(&keywords, "keywords", strings.Join(def.Keywords, ","), "Comma-separated keywords to count.")
	fs.StringVar(&keywords, "k", strings.Join(def.Keywords, ","), "Comma-separated keywords (shorthand).")
	fs.StringVar(&extensions, "ext", strings.Join(def.Extensions, ","), "Comma-separated file extensions to analyze.")
	fs.StringVar(&cfg.OutputFile, "output", def.OutputFile, "Report file path (empty to disable).")
	fs.StringVar(&cfg.OutputFile, "o", def.OutputFile, "Report file path (shorthand).")
	fs.StringVar(&cfg.Format, "format", def.Format, "Report format: text or json.")
	fs.StringVar(&cfg.DemoDir, "demo-dir", def.DemoDir, "Folder receiving generated demo logs.")
	fs.IntVar(&cfg.DemoFiles, "demo-files", def.DemoFiles, "Number of demo log files to generate.")
	fs.IntVar(&cfg.DemoLines, "demo-lines", def.DemoLines, "Lines per demo log file.")
	fs.DurationVar(&cfg.Timeout, "timeout", def.Timeout, "Maximum duration of the whole comparison.")
	fs.IntVar(&cfg.MaxLineSize, "max-line", def.MaxLineSize, "Longest accepted line in bytes.")
	fs.DurationVar(&cfg.MonitorInterval, "monitor", def.MonitorInterval, "Pool status report interval (0 disables).")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", def.MetricsFile, "Write Prometheus metrics to this file after the run.")
	fs.StringVar(&cfg.ConfigFile, "config", def.ConfigFile, "YAML configuration file.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Only print the report.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Only print the report (shorthand).")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Log every processed file.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Log every processed file (shorthand).")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.Theme, "theme", def.Theme, "Color theme: "+strings.Join(ui.ThemeNames(), ", ")+".")
	fs.BoolVar(&cfg.TUI, "tui", false, "Show the interactive dashboard.")
	fs.BoolVar(&cfg.Version, "version", false, "Print version information and exit.")
	fs.BoolVar(&cfg.Version, "V", false, "Print version information (shorthand).")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script for bash, zsh or fish.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}

	if err := applyPositional(fs); err != nil {
		return AppConfig{}, err
	}

	cfg.Keywords = ParseList(keywords)
	cfg.Extensions = ParseList(extensions)

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = lookupEnv("CONFIG")
	}
	if cfg.ConfigFile != "" {
		fc, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return AppConfig{}, err
		}
		fc.apply(&cfg, fs)
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// applyPositional maps "[dir [poolSize [keywords]]]" onto the flags the user
// did not set. Going through fs.Set marks them as set, so the environment and
// the config file do not override them.
func applyPositional(fs *flag.FlagSet) error {
	positional := fs.Args()
	if len(positional) > 3 {
		return apperrors.NewConfigError("too many arguments: %q", positional[3:])
	}
	bindings := [][]string{{"dir"}, {"pool", "p"}, {"keywords", "k"}}
	given := explicitFlags(fs)
	for i, arg := range positional {
		names := bindings[i]
		if given.has(names...) {
			continue
		}
		if err := fs.Set(names[0], strings.TrimSpace(arg)); err != nil {
			return apperrors.NewConfigError("invalid %s argument %q", names[0], arg)
		}
	}
	return nil
}

// ParseList splits a comma-separated list, trims each entry, and drops
// blanks and repeats while keeping first-occurrence order.
func ParseList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Validate checks the configuration for values that would prevent a run.
func (c AppConfig) Validate() error {
	switch {
	case c.PoolSize < 1:
		return apperrors.NewConfigError("pool size must be at least 1, got %d", c.PoolSize)
	case len(c.Keywords) == 0:
		return apperrors.NewConfigError("keyword set is empty")
	case c.Format != FormatText && c.Format != FormatJSON:
		return apperrors.NewConfigError("unknown report format %q (want %s or %s)", c.Format, FormatText, FormatJSON)
	case c.DemoFiles < 0 || c.DemoLines < 0:
		return apperrors.NewConfigError("demo file and line counts must not be negative")
	case c.Timeout <= 0:
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	case c.MaxLineSize < 1:
		return apperrors.NewConfigError("max line size must be positive, got %d", c.MaxLineSize)
	case c.MonitorInterval < 0:
		return apperrors.NewConfigError("monitor interval must not be negative")
	case c.Completion != "" && !slices.Contains(CompletionShells, c.Completion):
		return apperrors.NewConfigError("unsupported shell %q for -completion", c.Completion)
	case !ui.HasTheme(c.Theme):
		return apperrors.NewConfigError("unknown theme %q (want one of %s)", c.Theme, strings.Join(ui.ThemeNames(), ", "))
	case c.Quiet && c.TUI:
		return apperrors.NewConfigError("-quiet and -tui cannot be combined")
	}
	return nil
}
