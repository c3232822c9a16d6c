package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/clonobrowser/annotator/pkg/column"
	"github.com/clonobrowser/annotator/pkg/uifilter"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra flags are typically global
var (
	operatorsValueType string
	operatorsJSON      bool
)

//nolint:gochecknoglobals // Cobra commands are typically global
var operatorsCmd = &cobra.Command{
	Use:   "operators",
	Short: "List the filter operators available in the editor",
	Long:  `List the editor's filter operators, optionally narrowed to those applicable to a column value type.`,
	Args:  cobra.NoArgs,
	RunE:  runOperators,
}

func init() {
	rootCmd.AddCommand(operatorsCmd)
	operatorsCmd.Flags().StringVar(&operatorsValueType, "value-type", "", "column value type (Int, Long, Float, Double, String)")
	operatorsCmd.Flags().BoolVar(&operatorsJSON, "json", false, "print JSON instead of a table")
}

func runOperators(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	operators := uifilter.Catalog()

	if operatorsValueType != "" {
		vt := column.ValueType(operatorsValueType)
		if !vt.IsNumeric() && !vt.IsString() {
			return fmt.Errorf("unknown value type %q", operatorsValueType)
		}

		operators = uifilter.OptionsFor(vt)
	}

	if operatorsJSON {
		return writeJSON(cmd.OutOrStdout(), operators, true)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tLABEL\tCOLUMNS\tVALUE TYPES")

	for _, op := range operators {
		accepts := make([]string, 0, len(op.Accepts))
		for _, vt := range op.Accepts {
			accepts = append(accepts, string(vt))
		}

		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", op.Type, op.Label, op.Columns, strings.Join(accepts, ","))
	}

	return w.Flush()
}
