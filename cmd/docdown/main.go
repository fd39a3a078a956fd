// Package main is the entry point for the docdown CLI.
//
//	docdown [flags] <source> <target>
//
// source is a Word document or a directory searched recursively for .doc and
// .docx files; target receives the Markdown files and their images, mirroring
// the source tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// errConversionFailed signals a run that finished with failed files or images.
var errConversionFailed = errors.New("one or more conversions failed")

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docdown <source> <target>",
		Short: "Convert Word documents to Markdown",
		Long: `docdown converts .docx documents to Markdown. Headings are taken from
paragraph styles or inferred from font size and weight, monospaced paragraphs
become fenced code blocks, and embedded images are written to an images
directory next to each Markdown file.

A source directory is processed recursively and its structure is mirrored
under the target directory. A summary is printed when the run completes and
the exit status is non-zero if any document or image failed.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return run(ctx, loadConfig(v), args[0], args[1], cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "config file (default: ./docdown.yaml or ~/.config/docdown/config.yaml)")
	flags.String("log-dir", "logs", "directory for log files")
	flags.Int("concurrency", 1, "number of documents converted at once")
	flags.Bool("ocr-alt", false, "describe images without alt text using OCR (requires a build with -tags ocr)")
	flags.String("ocr-lang", "eng", "OCR language(s), e.g. eng+fra")
	flags.String("report", "", "write a YAML report to this file")
	flags.BoolP("verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// initConfig binds flags, environment and the optional config file.
// Precedence: flag, DOCDOWN_* environment variable, config file, default.
func initConfig(v *viper.Viper, cmd *cobra.Command) error {
	for _, key := range configKeys {
		if f := cmd.Flags().Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	v.SetEnvPrefix("DOCDOWN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		return nil
	}

	v.SetConfigName("docdown")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "docdown"))
	}

	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func main() {
	cmd := newRootCmd(viper.New())
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errConversionFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
