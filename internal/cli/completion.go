package cli

import (
	"fmt"
	"io"
	"strings"

	apperrors "github.com/agbru/fractaljoke/internal/errors"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "help")
	Short     string   // short flag without "-" (e.g., "h")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
	Section   string   // fish section the flag is listed under
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Short: "V", Help: "Show version information", Section: "Help and version"},
	{Long: "fractal", Help: "Render the Julia fractal image", Section: "Modes"},
	{Long: "fetch", Help: "Fetch two jokes concurrently", Section: "Modes"},
	{Long: "output", Short: "o", Help: "Image output path", IsFile: true, ValueName: "file", Section: "Renderer"},
	{Long: "open", Help: "Open the image in the system viewer", Section: "Renderer"},
	{Long: "width", Help: "Canvas width in pixels", Values: []string{"400", "800", "1600"}, ValueName: "pixels", Section: "Renderer"},
	{Long: "height", Help: "Canvas height in pixels", Values: []string{"400", "800", "1600"}, ValueName: "pixels", Section: "Renderer"},
	{Long: "c-real", Help: "Real part of the Julia constant", ValueName: "float", Section: "Renderer"},
	{Long: "c-imag", Help: "Imaginary part of the Julia constant", ValueName: "float", Section: "Renderer"},
	{Long: "url", Help: "Joke endpoint", ValueName: "url", Section: "Fetcher"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"5s", "30s", "1m", "5m"}, ValueName: "duration", Section: "Fetcher"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts", Section: "Output"},
	{Long: "verbose", Short: "v", Help: "Enable debug logging", Section: "Output"},
	{Long: "no-color", Help: "Disable colored output", Section: "Output"},
	{Long: "log-level", Help: "Log level", Values: []string{"trace", "debug", "info", "warn", "error", "disabled"}, ValueName: "level", Section: "Output"},
	{Long: "log-format", Help: "Log format", Values: []string{"console", "json"}, ValueName: "format", Section: "Output"},
	{Long: "metrics-file", Help: "Prometheus textfile path", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell", Section: "Completion"},
}

// fishSections lists the fish comment headers in output order.
var fishSections = []string{"Help and version", "Modes", "Renderer", "Fetcher", "Output", "Completion"}

// GenerateCompletion writes a completion script for shell to out.
// The program name is used both as the completed command and in comments.
func GenerateCompletion(out io.Writer, shell, program string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, program)
	case "zsh":
		return generateZshCompletion(out, program)
	case "fish":
		return generateFishCompletion(out, program)
	default:
		return apperrors.NewConfigError("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

// funcName turns a program name into a shell function identifier.
func funcName(program string) string {
	return "_" + strings.NewReplacer("-", "_", ".", "_").Replace(program)
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, program string) error {
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	var caseBody strings.Builder
	writeCase := func(patterns []string, body string) {
		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(patterns, "|"))
		caseBody.WriteString(")\n            ")
		caseBody.WriteString(body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}

	var filePatterns []string
	for _, f := range flagRegistry {
		if !f.IsFile {
			continue
		}
		filePatterns = append(filePatterns, "--"+f.Long)
		if f.Short != "" {
			filePatterns = append(filePatterns, "-"+f.Short)
		}
	}
	if len(filePatterns) > 0 {
		writeCase(filePatterns, `COMPREPLY=( $(compgen -f -- "${cur}") )`)
	}
	for _, f := range flagRegistry {
		if !f.IsFile && len(f.Values) > 0 {
			writeCase([]string{"--" + f.Long},
				fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")))
		}
	}

	fn := funcName(program)
	script := fmt.Sprintf(`# Bash completion script for %[1]s
# Add this to your ~/.bashrc or ~/.bash_completion

%[2]s_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%[3]s"

    case "${prev}" in
%[4]s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F %[2]s_completions %[1]s
`, program, fn, strings.Join(opts, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, program string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	fn := funcName(program)
	script := fmt.Sprintf(`#compdef %[1]s

# Zsh completion script for %[1]s
# Add this to your ~/.zshrc or place in $fpath

%[2]s() {
    _arguments -s \
%[3]s
}

%[2]s "$@"
`, program, fn, strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, program string) error {
	lines := []string{
		"# Fish completion script for " + program,
		fmt.Sprintf("# Add this to ~/.config/fish/completions/%s.fish", program),
		"",
		"# Disable file completion by default",
		fmt.Sprintf("complete -c %s -f", program),
		"",
	}

	for _, sec := range fishSections {
		lines = append(lines, "# "+sec)
		for _, f := range flagRegistry {
			if f.Section == sec {
				lines = append(lines, fishCompleteLine(f, program))
			}
		}
		lines = append(lines, "")
	}

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, program string) string {
	parts := []string{"complete -c " + program}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
