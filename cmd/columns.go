package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/clonobrowser/annotator/pkg/compiler"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra flags are typically global
var matchedSteps []int

//nolint:gochecknoglobals // Cobra commands are typically global
var deriveIDCmd = &cobra.Command{
	Use:   "derive-id [file]",
	Short: "Derive the anchored ID of a column",
	Long: `Derive-id reads a document with "anchors" (anchor ID to column spec) and a
"column" spec, and prints the column ID filters should reference, along with
whether the column spans both the sample and clonotype axes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDeriveID,
}

//nolint:gochecknoglobals // Cobra commands are typically global
var resolveCmd = &cobra.Command{
	Use:   "resolve [file]",
	Short: "Resolve the label a record receives from the steps it matched",
	Long: `Resolve reads a canonical script and applies step precedence to the step
indexes given with --matched. Later steps override earlier ones.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(deriveIDCmd, resolveCmd)
	resolveCmd.Flags().IntSliceVar(&matchedSteps, "matched", nil, "indexes of the steps the record matched")
}

func runDeriveID(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	data, err := readDocument(cmd, args)
	if err != nil {
		return err
	}

	var req compiler.ColumnRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to decode column request: %w", err)
	}

	derived, err := compiler.DeriveColumn(req)
	if err != nil {
		return err
	}

	return writeJSON(cmd.OutOrStdout(), derived, true)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	script, err := readCanonical(cmd, args)
	if err != nil {
		return err
	}

	resolution, err := compiler.Resolve(script, matchedSteps)
	if err != nil {
		return err
	}

	if !resolution.Matched {
		fmt.Fprintln(cmd.OutOrStdout(), "no step matched")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), resolution.Label)

	return nil
}
