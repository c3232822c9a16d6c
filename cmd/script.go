package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/clonobrowser/annotator/pkg/filter"
	"github.com/clonobrowser/annotator/pkg/rendering"
	"github.com/clonobrowser/annotator/pkg/uifilter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ErrScriptInvalid is returned by validate when the script fails validation
var ErrScriptInvalid = errors.New("script is not valid for its mode")

//nolint:gochecknoglobals // Cobra flags are typically global
var (
	prettyOutput   bool
	describeFormat string
)

//nolint:gochecknoglobals // Cobra commands are typically global
var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile an editor script into canonical form",
	Long: `Compile reads an editor script (JSON or YAML, from a file or stdin) and
prints the canonical script. Steps whose condition list is empty are dropped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

//nolint:gochecknoglobals // Cobra commands are typically global
var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Convert a canonical script back into editor form",
	Long: `Parse reads a canonical script and prints its editor form. Scripts using
filters the editor cannot represent are rejected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

//nolint:gochecknoglobals // Cobra commands are typically global
var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check that a canonical script can discriminate the records of its mode",
	Long: `Validate reads a canonical script and reports whether it is usable in its
annotation mode. The command exits non-zero for invalid scripts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

//nolint:gochecknoglobals // Cobra commands are typically global
var describeCmd = &cobra.Command{
	Use:   "describe [file]",
	Short: "Summarize a canonical script in evaluation order",
	Long: `Describe prints every step of a canonical script as a readable condition,
highest priority first. The text report can be replaced with a custom template
via reportTemplate in the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDescribe,
}

func init() {
	for _, c := range []*cobra.Command{compileCmd, parseCmd, validateCmd, describeCmd} {
		c.Flags().BoolVar(&prettyOutput, "pretty", false, "indent JSON output")
		rootCmd.AddCommand(c)
	}

	describeCmd.Flags().StringVar(&describeFormat, "format", "text", "output format (text, json)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	_, svc, cleanup, err := setupCLI(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	data, err := readDocument(cmd, args)
	if err != nil {
		return err
	}

	script, err := uifilter.UnmarshalScript(data)
	if err != nil {
		return fmt.Errorf("failed to decode editor script: %w", err)
	}

	compiled, err := svc.Compile(cmd.Context(), script)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"digest": compiled.Digest,
		"cached": compiled.Cached,
	}).Debug("Script compiled")

	return writeJSON(cmd.OutOrStdout(), compiled.Script, prettyOutput)
}

func runParse(cmd *cobra.Command, args []string) error {
	_, svc, cleanup, err := setupCLI(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	script, err := readCanonical(cmd, args)
	if err != nil {
		return err
	}

	parsed, err := svc.Parse(cmd.Context(), script)
	if err != nil {
		return err
	}

	return writeJSON(cmd.OutOrStdout(), parsed, prettyOutput)
}

func runValidate(cmd *cobra.Command, args []string) error {
	_, svc, cleanup, err := setupCLI(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	script, err := readCanonical(cmd, args)
	if err != nil {
		return err
	}

	result := svc.Validate(cmd.Context(), script)

	status := "valid"
	if !result.Valid {
		status = "invalid"
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", status, result.Reason)

	if !result.Valid {
		return ErrScriptInvalid
	}

	return nil
}

func runDescribe(cmd *cobra.Command, args []string) error {
	if describeFormat != "text" && describeFormat != "json" {
		return fmt.Errorf("unknown format %q, expected text or json", describeFormat)
	}

	config, svc, cleanup, err := setupCLI(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	script, err := readCanonical(cmd, args)
	if err != nil {
		return err
	}

	report, err := svc.Describe(cmd.Context(), script, uifilter.ColumnLabel)
	if err != nil {
		return err
	}

	if describeFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), report, prettyOutput)
	}

	var content string

	if config.ReportTemplate != "" {
		raw, err := os.ReadFile(config.ReportTemplate) //nolint:gosec // User-provided template path
		if err != nil {
			return fmt.Errorf("failed to read report template: %w", err)
		}

		content = string(raw)
	}

	text, err := rendering.NewTemplateEngine().RenderReport(content, report)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), text)

	return err
}

func readCanonical(cmd *cobra.Command, args []string) (filter.Script, error) {
	data, err := readDocument(cmd, args)
	if err != nil {
		return filter.Script{}, err
	}

	script, err := filter.UnmarshalScript(data)
	if err != nil {
		return filter.Script{}, fmt.Errorf("failed to decode canonical script: %w", err)
	}

	return script, nil
}
