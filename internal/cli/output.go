package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

const (
	OutputTable = "table"
	OutputYAML  = "yaml"
	OutputJSON  = "json"
	OutputHTML  = "html"
)

func outputFlag(cmd *cobra.Command, def string, allowed ...string) {
	cmd.Flags().StringP(FlagOutput, "o", def, fmt.Sprintf("output format, one of %v", allowed))
	_ = cmd.RegisterFlagCompletionFunc(FlagOutput, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return allowed, cobra.ShellCompDirectiveNoFileComp
	})
}

func getOutput(cmd *cobra.Command, allowed ...string) (string, error) {
	out, err := cmd.Flags().GetString(FlagOutput)
	if err != nil {
		return "", err
	}
	for _, a := range allowed {
		if out == a {
			return out, nil
		}
	}
	return "", fmt.Errorf("invalid output format %q, want one of %v", out, allowed)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// yamlToJSON converts a YAML document to indented JSON.
func yamlToJSON(doc string) (string, error) {
	j, err := yaml.YAMLToJSON([]byte(doc))
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, j, "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}

func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "✓ "+format+"\n", args...)
}

func failure(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "✗ "+format+"\n", args...)
}
