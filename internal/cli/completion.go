package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every generator reads flagRegistry, so a new flag only needs an entry
// there.
type FlagCompletion struct {
	Long      string   // long flag name without "--"
	Short     string   // short flag without "-"
	Help      string   // description text
	Values    []string // suggested values (nil = boolean or free-form)
	ValueName string   // label for the value in zsh
	IsFile    bool     // the flag takes a file path
	IsVariant bool     // values come from the variant list (dynamic)
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Help: "Show version information"},
	{Long: "radix", Help: "Radix of the operands", Values: []string{"2", "8", "10", "16", "36"}, ValueName: "radix"},
	{Long: "output-radix", Help: "Radix of the result", Values: []string{"2", "8", "10", "16", "36"}, ValueName: "radix"},
	{Long: "timeout", Help: "Maximum evaluation time", Values: []string{"10s", "1m", "5m", "30m"}, ValueName: "duration"},
	{Long: "compare", Help: "Compare algorithm variants"},
	{Long: "variants", Help: "Variants to compare", IsVariant: true, ValueName: "variants"},
	{Long: "verify", Help: "Check against a reference backend"},
	{Long: "oracle", Help: "Reference backend", Values: []string{"big", "gmp"}, ValueName: "backend"},
	{Long: "repl", Short: "i", Help: "Interactive calculator"},
	{Long: "tui", Help: "Benchmark dashboard"},
	{Long: "serve", Help: "Serve the HTTP API"},
	{Long: "addr", Help: "Listen address", ValueName: "address"},
	{Long: "calibrate", Help: "Run calibration mode"},
	{Long: "auto-calibrate", Help: "Quick calibration before evaluating"},
	{Long: "calibration-profile", Help: "Calibration profile file", IsFile: true, ValueName: "file"},
	{Long: "mult-threshold", Help: "Schoolbook multiplication limit in limbs", ValueName: "limbs"},
	{Long: "toom3-threshold", Help: "Toom-3 threshold in limbs", ValueName: "limbs"},
	{Long: "toom4-threshold", Help: "Toom-4 threshold in limbs", ValueName: "limbs"},
	{Long: "div-threshold", Help: "Recursive division threshold in limbs", ValueName: "limbs"},
	{Long: "gcd-threshold", Help: "Subquadratic GCD threshold in limbs", ValueName: "limbs"},
	{Long: "max-words", Help: "Largest operand in limbs", ValueName: "limbs"},
	{Long: "gc-mode", Help: "Garbage collector control", Values: []string{"auto", "aggressive", "disabled"}, ValueName: "mode"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "digits", Help: "Digits kept around truncated results", ValueName: "number"},
	{Long: "verbose", Short: "v", Help: "Display the full result"},
	{Long: "details", Short: "d", Help: "Show size and timing details"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "no-color", Help: "Disable colors"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell. operations are
// completed as the first positional argument, variants as values of
// --variants.
func GenerateCompletion(out io.Writer, shell string, operations, variants []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, operations, variants)
	case "zsh":
		return generateZshCompletion(out, operations, variants)
	case "fish":
		return generateFishCompletion(out, operations, variants)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, operations, variants)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

func generateBashCompletion(out io.Writer, operations, variants []string) error {
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	var cases strings.Builder
	writeCase := func(patterns []string, body string) {
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(patterns, "|"), body)
	}
	var filePatterns []string
	for _, f := range flagRegistry {
		switch {
		case f.IsVariant:
			writeCase([]string{"--" + f.Long}, `COMPREPLY=( $(compgen -W "${variants}" -- "${cur}") )`)
		case f.IsFile:
			filePatterns = append(filePatterns, "--"+f.Long)
			if f.Short != "" {
				filePatterns = append(filePatterns, "-"+f.Short)
			}
		case len(f.Values) > 0:
			writeCase([]string{"--" + f.Long}, fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")))
		}
	}
	if len(filePatterns) > 0 {
		writeCase(filePatterns, `COMPREPLY=( $(compgen -f -- "${cur}") )`)
	}

	_, err := fmt.Fprintf(out, `# Bash completion script for eintcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_eintcalc_completions() {
    local cur prev opts operations variants
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    operations="%s"
    variants="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
    COMPREPLY=( $(compgen -W "${operations}" -- "${cur}") )
}

complete -F _eintcalc_completions eintcalc
`, strings.Join(opts, " "), strings.Join(operations, " "), strings.Join(variants, " "), cases.String())
	if err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

func generateZshCompletion(out io.Writer, operations, variants []string) error {
	args := make([]string, 0, len(flagRegistry)+1)
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	args = append(args, "        '1:operation:($operations)'")

	_, err := fmt.Fprintf(out, `#compdef eintcalc

# Zsh completion script for eintcalc
# Add this to your ~/.zshrc or place in $fpath

_eintcalc() {
    local -a operations variants
    operations=(%s)
    variants=(%s all)

    _arguments -s \
%s
}

_eintcalc "$@"
`, strings.Join(operations, " "), strings.Join(variants, " "), strings.Join(args, " \\\n"))
	if err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a flag as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsVariant:
		valueSuffix = fmt.Sprintf(":%s:($variants)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}
	if f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

func generateFishCompletion(out io.Writer, operations, variants []string) error {
	lines := []string{
		"# Fish completion script for eintcalc",
		"# Add this to ~/.config/fish/completions/eintcalc.fish",
		"",
		"complete -c eintcalc -f",
		"",
		"# Operations",
		fmt.Sprintf("complete -c eintcalc -n '__fish_is_first_arg' -a '%s'", strings.Join(operations, " ")),
		"",
		"# Flags",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, strings.Join(variants, " ")))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

func fishCompleteLine(f FlagCompletion, variantList string) string {
	parts := []string{"complete -c eintcalc"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))
	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsVariant:
		parts = append(parts, fmt.Sprintf("-xa '%s all'", variantList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func generatePowerShellCompletion(out io.Writer, operations, variants []string) error {
	var options []string
	for _, f := range flagRegistry {
		if f.Short != "" {
			options = append(options, fmt.Sprintf("        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		options = append(options, fmt.Sprintf("        @{Name = '--%s'; Description = '%s' }", f.Long, f.Help))
	}

	var switches []string
	for _, f := range flagRegistry {
		var source string
		switch {
		case f.IsVariant:
			source = "$eintcalcVariants"
		case len(f.Values) > 0 && !f.IsFile:
			source = "@(" + psQuote(f.Values) + ")"
		default:
			continue
		}
		switches = append(switches, fmt.Sprintf(`        '--%s' {
            %s | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, source))
	}

	_, err := fmt.Fprintf(out, `# PowerShell completion script for eintcalc
# Add this to your $PROFILE

$eintcalcOperations = @(%s)
$eintcalcVariants = @(%s, 'all')

Register-ArgumentCompleter -CommandName 'eintcalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    if ($wordToComplete -notlike '-*') {
        $eintcalcOperations | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }
    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, psQuote(operations), psQuote(variants), strings.Join(options, "\n"), strings.Join(switches, "\n"))
	return err
}

func psQuote(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
