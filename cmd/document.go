package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when the input holds no script
var ErrEmptyDocument = errors.New("input is empty")

// readDocument reads the script named by args[0], or stdin when it is absent or "-"
func readDocument(cmd *cobra.Command, args []string) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0]) //nolint:gosec // User-provided script path
	}

	if err != nil {
		return nil, err
	}

	return toJSON(data)
}

// toJSON accepts a JSON or YAML document and returns it as JSON
func toJSON(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyDocument
	}

	if json.Valid(trimmed) {
		return trimmed, nil
	}

	var doc interface{}
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("input is neither JSON nor YAML: %w", err)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML to JSON: %w", err)
	}

	return out, nil
}

// writeJSON writes v to w, indented when pretty is set
func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	var (
		data []byte
		err  error
	)

	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}
