package cli

import (
	"fmt"
	"html"

	"github.com/spf13/cobra"

	"github.com/wcrum/krb-tui/internal/highlight"
)

func newViewCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "view NAME...",
		Aliases: []string{"show"},
		Short:   "Print the recycled object held by recycle items",
		Example: `  krb-tui view foo bar
  krb-tui view foo -o json
  krb-tui view foo -o html > foo.html`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := getOutput(cmd, OutputYAML, OutputJSON, OutputHTML)
			if err != nil {
				return err
			}
			gw, err := a.gateway()
			if err != nil {
				return err
			}

			w, errW := cmd.OutOrStdout(), cmd.ErrOrStderr()
			failed, first := false, true
			for _, name := range args {
				doc, err := gw.GetItemDocument(cmd.Context(), name)
				if err != nil {
					failure(errW, "failed to get RecycleItem [%s]: %v", name, err)
					failed = true
					continue
				}

				switch out {
				case OutputJSON:
					j, err := yamlToJSON(doc)
					if err != nil {
						failure(errW, "failed to convert RecycleItem [%s] to JSON: %v", name, err)
						failed = true
						continue
					}
					fmt.Fprintf(w, "» [%s]\n%s\n", name, j)
				case OutputHTML:
					fmt.Fprintf(w, "<pre class=\"hl\" title=\"%s\">%s</pre>\n", html.EscapeString(name), highlight.Annotate(doc).HTML())
				default:
					if !first {
						fmt.Fprintln(w, "---")
					}
					fmt.Fprint(w, doc)
					if doc != "" && doc[len(doc)-1] != '\n' {
						fmt.Fprintln(w)
					}
				}
				first = false
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}
	outputFlag(cmd, OutputYAML, OutputYAML, OutputJSON, OutputHTML)
	return cmd
}
