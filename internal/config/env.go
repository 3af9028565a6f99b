package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// flagSet is the set of flag names given explicitly on the command line.
type flagSet map[string]bool

func explicitFlags(fs *flag.FlagSet) flagSet {
	set := make(flagSet)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// has reports whether one of the spellings of a flag was given.
func (s flagSet) has(names ...string) bool {
	for _, name := range names {
		if s[name] {
			return true
		}
	}
	return false
}

func lookupEnv(key string) string {
	return os.Getenv(EnvPrefix + key)
}

// envOverride binds LOGANALYZER_<key> to the field behind flags.
type envOverride struct {
	key   string
	flags []string
	apply func(*AppConfig, string)
}

// Setters ignore values they cannot parse, so a malformed variable leaves
// the file or default value in place.

func intSetter(field func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*field(c) = n
		}
	}
}

func durationSetter(field func(*AppConfig) *time.Duration) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			*field(c) = d
		}
	}
}

func boolSetter(field func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			*field(c) = true
		case "0", "false", "no", "off":
			*field(c) = false
		}
	}
}

func stringSetter(field func(*AppConfig) *string, normalize func(string) string) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if normalize != nil {
			v = normalize(v)
		}
		*field(c) = v
	}
}

func listSetter(field func(*AppConfig) *[]string) func(*AppConfig, string) {
	return func(c *AppConfig, v string) { *field(c) = ParseList(v) }
}

var envOverrides = []envOverride{
	{"DIR", []string{"dir"}, stringSetter(func(c *AppConfig) *string { return &c.Dir }, nil)},
	{"POOL", []string{"pool", "p"}, intSetter(func(c *AppConfig) *int { return &c.PoolSize })},
	{"KEYWORDS", []string{"keywords", "k"}, listSetter(func(c *AppConfig) *[]string { return &c.Keywords })},
	{"EXT", []string{"ext"}, listSetter(func(c *AppConfig) *[]string { return &c.Extensions })},
	{"OUTPUT", []string{"output", "o"}, stringSetter(func(c *AppConfig) *string { return &c.OutputFile }, nil)},
	{"FORMAT", []string{"format"}, stringSetter(func(c *AppConfig) *string { return &c.Format }, strings.ToLower)},
	{"TIMEOUT", []string{"timeout"}, durationSetter(func(c *AppConfig) *time.Duration { return &c.Timeout })},
	{"MONITOR", []string{"monitor"}, durationSetter(func(c *AppConfig) *time.Duration { return &c.MonitorInterval })},
	{"MAX_LINE", []string{"max-line"}, intSetter(func(c *AppConfig) *int { return &c.MaxLineSize })},
	{"DEMO_DIR", []string{"demo-dir"}, stringSetter(func(c *AppConfig) *string { return &c.DemoDir }, nil)},
	{"DEMO_FILES", []string{"demo-files"}, intSetter(func(c *AppConfig) *int { return &c.DemoFiles })},
	{"DEMO_LINES", []string{"demo-lines"}, intSetter(func(c *AppConfig) *int { return &c.DemoLines })},
	{"METRICS_FILE", []string{"metrics-file"}, stringSetter(func(c *AppConfig) *string { return &c.MetricsFile }, nil)},
	{"THEME", []string{"theme"}, stringSetter(func(c *AppConfig) *string { return &c.Theme }, strings.ToLower)},
	{"VERBOSE", []string{"verbose", "v"}, boolSetter(func(c *AppConfig) *bool { return &c.Verbose })},
	{"QUIET", []string{"quiet", "q"}, boolSetter(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", []string{"no-color"}, boolSetter(func(c *AppConfig) *bool { return &c.NoColor })},
	{"TUI", []string{"tui"}, boolSetter(func(c *AppConfig) *bool { return &c.TUI })},
}

// applyEnvOverrides copies the non-empty LOGANALYZER_* variables onto c for
// every setting whose flag was not given. LOGANALYZER_CONFIG is read
// separately, before the config file is loaded.
func applyEnvOverrides(c *AppConfig, fs *flag.FlagSet) {
	given := explicitFlags(fs)
	for _, o := range envOverrides {
		if given.has(o.flags...) {
			continue
		}
		if v := lookupEnv(o.key); v != "" {
			o.apply(c, v)
		}
	}
}
