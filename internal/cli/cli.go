// Package cli wires the pseudocode library into a command line tool.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/eolymp/go-pseudocode"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds the tool configuration, resolved from defaults, an
// optional config file, PSEUDOCODE_* environment variables and flags,
// in that order.
type Config struct {
	IndentSize     string `mapstructure:"indent_size"`
	CommentSymbol  string `mapstructure:"comment_symbol"`
	LineNumber     bool   `mapstructure:"line_number"`
	LineNumberPunc string `mapstructure:"line_number_punc"`
	Output         string `mapstructure:"output"`
	Verbose        bool   `mapstructure:"verbose"`
}

// Execute runs the tool and returns the process exit code.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(stdin)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		return ExitCodeFor(err)
	}

	return 0
}

// ExitCodeFor maps render failures to exit codes so scripts can branch
// on the failure class.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	var perr *pseudocode.Error
	if errors.As(err, &perr) {
		switch perr.Kind {
		case pseudocode.KindLexical, pseudocode.KindSyntax:
			return 2
		case pseudocode.KindConfig:
			return 7
		case pseudocode.KindInternal:
			return 10
		}
	}

	return 1
}

// NewRootCommand builds the pseudocode command tree. Input comes from
// the file argument or stdin.
func NewRootCommand(stdin io.Reader) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "pseudocode [file]",
		Short: "Render TeX-style pseudocode to HTML",
		Long: `Renders algorithm and algorithmic environments written in a
TeX-like pseudocode markup into HTML. Reads the given file, or stdin
when no file is given, and writes the markup to stdout or --output.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cmd)
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

			input, err := readInput(stdin, args)
			if err != nil {
				return err
			}

			logger.Debug("rendering", "bytes", len(input), "line_number", cfg.LineNumber)

			markup, err := pseudocode.RenderString(input, cfg.options())
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}

			return writeOutput(cmd.OutOrStdout(), cfg.Output, markup)
		},
	}

	check := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse input and report diagnostics without rendering",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(stdin, args)
			if err != nil {
				return err
			}

			root, err := pseudocode.Parse(input)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d environment(s)\n", len(root.Children))
			return nil
		},
	}
	check.SilenceUsage = true
	check.SilenceErrors = true

	root.AddCommand(check)

	root.PersistentFlags().StringP("output", "o", "", "Write markup to file instead of stdout")
	root.PersistentFlags().String("indent-size", "", `Indent per nesting level, with "em" suffix`)
	root.PersistentFlags().Bool("line-number", false, "Number code lines")
	root.PersistentFlags().String("line-number-punc", "", "Punctuation after a line number")
	root.PersistentFlags().String("comment-symbol", "", "Reserved comment prefix")
	root.PersistentFlags().BoolP("verbose", "v", false, "Verbose diagnostics")

	return root
}

func (c *Config) options() *pseudocode.Options {
	return &pseudocode.Options{
		IndentSize:     c.IndentSize,
		CommentSymbol:  c.CommentSymbol,
		LineNumber:     c.LineNumber,
		LineNumberPunc: c.LineNumberPunc,
	}
}

func loadConfig(v *viper.Viper, cmd *cobra.Command) (*Config, error) {
	v.SetDefault("indent_size", "")
	v.SetDefault("comment_symbol", "")
	v.SetDefault("line_number", false)
	v.SetDefault("line_number_punc", "")
	v.SetDefault("output", "")
	v.SetDefault("verbose", false)

	v.SetConfigName("pseudocode")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pseudocode"))
	}

	v.SetEnvPrefix("PSEUDOCODE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	bind := map[string]string{
		"output":           "output",
		"indent_size":      "indent-size",
		"line_number":      "line-number",
		"line_number_punc": "line-number-punc",
		"comment_symbol":   "comment-symbol",
		"verbose":          "verbose",
	}

	for key, flag := range bind {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}

	return string(data), nil
}

func writeOutput(stdout io.Writer, path, markup string) error {
	if path == "" {
		_, err := io.WriteString(stdout, markup)
		return err
	}

	if err := os.WriteFile(path, []byte(markup), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
