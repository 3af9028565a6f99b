package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/loganalyzer/internal/ui"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "-" (e.g., "pool")
	Short     string   // shorthand without "-" (e.g., "p")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
	IsDir     bool     // true if the flag takes a directory path
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "dir", Help: "Folder containing log files", ValueName: "dir", IsDir: true},
	{Long: "pool", Short: "p", Help: "Number of workers", Values: []string{"1", "2", "4", "8", "16"}, ValueName: "number"},
	{Long: "keywords", Short: "k", Help: "Comma-separated keywords", ValueName: "list"},
	{Long: "ext", Help: "Comma-separated file extensions", Values: []string{".log", ".txt", ".log,.txt"}, ValueName: "list"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"30s", "1m", "5m", "10m"}, ValueName: "duration"},
	{Long: "max-line", Help: "Longest accepted line in bytes", ValueName: "bytes"},
	{Long: "monitor", Help: "Pool status report interval", Values: []string{"0", "1s", "5s", "10s"}, ValueName: "duration"},
	{Long: "output", Short: "o", Help: "Report file path", IsFile: true, ValueName: "file"},
	{Long: "format", Help: "Report format", Values: []string{"text", "json"}, ValueName: "format"},
	{Long: "metrics-file", Help: "Prometheus metrics file", IsFile: true, ValueName: "file"},
	{Long: "config", Help: "YAML configuration file", IsFile: true, ValueName: "file"},
	{Long: "demo-dir", Help: "Folder receiving demo logs", ValueName: "dir", IsDir: true},
	{Long: "demo-files", Help: "Number of demo log files", ValueName: "number"},
	{Long: "demo-lines", Help: "Lines per demo log file", ValueName: "number"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "verbose", Short: "v", Help: "Log every processed file"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "theme", Help: "Color theme", Values: ui.ThemeNames(), ValueName: "theme"},
	{Long: "tui", Help: "Show the interactive dashboard"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish").
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out)
	case "zsh":
		return generateZshCompletion(out)
	case "fish":
		return generateFishCompletion(out)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

// flagNames returns the dash-prefixed spellings of f.
func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "-"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer) error {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		names := flagNames(f)
		opts = append(opts, names...)

		var body string
		switch {
		case f.IsDir:
			body = `COMPREPLY=( $(compgen -d -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(names, "|"), body)
	}

	script := fmt.Sprintf(`# Bash completion script for loganalyzer
# Add this to your ~/.bashrc or ~/.bash_completion

_loganalyzer_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
    COMPREPLY=( $(compgen -d -- "${cur}") )
}

complete -F _loganalyzer_completions loganalyzer
`, strings.Join(opts, " "), cases.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef loganalyzer

# Zsh completion script for loganalyzer
# Add this to your ~/.zshrc or place in $fpath

_loganalyzer() {
    _arguments -s \
%s \
        '1:dir:_files -/' \
        '2:pool size:' \
        '3:keywords:'
}

_loganalyzer "$@"
`, strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsDir:
		valueSuffix = fmt.Sprintf(":%s:_files -/", f.ValueName)
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s -%s)'{-%s,-%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer) error {
	lines := []string{
		"# Fish completion script for loganalyzer",
		"# Add this to ~/.config/fish/completions/loganalyzer.fish",
		"",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete
// command. Go flags take a single dash, which fish spells -o.
func fishCompleteLine(f FlagCompletion) string {
	parts := []string{"complete -c loganalyzer"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	parts = append(parts, "-o "+f.Long, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsDir:
		parts = append(parts, "-xa '(__fish_complete_directories)'")
	case f.IsFile:
		parts = append(parts, "-rF")
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
