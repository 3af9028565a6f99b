package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/loganalyzer/internal/errors"
)

// FileConfig is the YAML form of the configuration. Pointer fields
// distinguish "absent" from the zero value, so only the keys present in the
// file take part in resolution.
//
//	dir: ./logs
//	pool: 4
//	keywords: [ERROR, WARN]
//	extensions: [.log]
//	output: analysis_result.txt
//	format: json
//	timeout: 2m
//	monitor: 500ms
//	max_line: 1048576
//	metrics_file: metrics.prom
//	theme: light
//	demo:
//	  dir: demo_logs
//	  files: 8
//	  lines: 2000
type FileConfig struct {
	Dir         *string  `yaml:"dir"`
	Pool        *int     `yaml:"pool"`
	Keywords    []string `yaml:"keywords"`
	Extensions  []string `yaml:"extensions"`
	Output      *string  `yaml:"output"`
	Format      *string  `yaml:"format"`
	Timeout     *string  `yaml:"timeout"`
	Monitor     *string  `yaml:"monitor"`
	MaxLine     *int     `yaml:"max_line"`
	MetricsFile *string  `yaml:"metrics_file"`
	Quiet       *bool    `yaml:"quiet"`
	Verbose     *bool    `yaml:"verbose"`
	NoColor     *bool    `yaml:"no_color"`
	Theme       *string  `yaml:"theme"`
	Demo        struct {
		Dir   *string `yaml:"dir"`
		Files *int    `yaml:"files"`
		Lines *int    `yaml:"lines"`
	} `yaml:"demo"`

	timeout time.Duration
	monitor time.Duration
}

// LoadFile reads and decodes a YAML configuration file. Unknown keys and
// malformed durations are reported as configuration errors.
func LoadFile(path string) (FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, apperrors.NewConfigError("cannot read config file %s: %v", path, err)
	}
	fc, err := decodeFile(b)
	if err != nil {
		return FileConfig{}, apperrors.NewConfigError("invalid config file %s: %v", path, err)
	}
	return fc, nil
}

func decodeFile(b []byte) (FileConfig, error) {
	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, err
	}
	var err error
	if fc.Timeout != nil {
		if fc.timeout, err = time.ParseDuration(*fc.Timeout); err != nil {
			return FileConfig{}, err
		}
	}
	if fc.Monitor != nil {
		if fc.monitor, err = time.ParseDuration(*fc.Monitor); err != nil {
			return FileConfig{}, err
		}
	}
	return fc, nil
}

// apply copies the values present in the file onto c, skipping the fields
// whose flag was set on the command line.
func (fc FileConfig) apply(c *AppConfig, fs *flag.FlagSet) {
	given := explicitFlags(fs)
	unset := func(names ...string) bool { return !given.has(names...) }

	if fc.Dir != nil && unset("dir") {
		c.Dir = *fc.Dir
	}
	if fc.Pool != nil && unset("pool", "p") {
		c.PoolSize = *fc.Pool
	}
	if fc.Keywords != nil && unset("keywords", "k") {
		c.Keywords = ParseList(strings.Join(fc.Keywords, ","))
	}
	if fc.Extensions != nil && unset("ext") {
		c.Extensions = ParseList(strings.Join(fc.Extensions, ","))
	}
	if fc.Output != nil && unset("output", "o") {
		c.OutputFile = *fc.Output
	}
	if fc.Format != nil && unset("format") {
		c.Format = strings.ToLower(*fc.Format)
	}
	if fc.Timeout != nil && unset("timeout") {
		c.Timeout = fc.timeout
	}
	if fc.Monitor != nil && unset("monitor") {
		c.MonitorInterval = fc.monitor
	}
	if fc.MaxLine != nil && unset("max-line") {
		c.MaxLineSize = *fc.MaxLine
	}
	if fc.MetricsFile != nil && unset("metrics-file") {
		c.MetricsFile = *fc.MetricsFile
	}
	if fc.Quiet != nil && unset("quiet", "q") {
		c.Quiet = *fc.Quiet
	}
	if fc.Verbose != nil && unset("verbose", "v") {
		c.Verbose = *fc.Verbose
	}
	if fc.NoColor != nil && unset("no-color") {
		c.NoColor = *fc.NoColor
	}
	if fc.Theme != nil && unset("theme") {
		c.Theme = strings.ToLower(*fc.Theme)
	}
	if fc.Demo.Dir != nil && unset("demo-dir") {
		c.DemoDir = *fc.Demo.Dir
	}
	if fc.Demo.Files != nil && unset("demo-files") {
		c.DemoFiles = *fc.Demo.Files
	}
	if fc.Demo.Lines != nil && unset("demo-lines") {
		c.DemoLines = *fc.Demo.Lines
	}
}
