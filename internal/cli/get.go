package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/wcrum/krb-tui/internal/domain"
	"github.com/wcrum/krb-tui/internal/format"
)

func newGetCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "get {items|policies}",
		Short:             "List recycle items or recycle policies",
		Args:              cobra.NoArgs,
		DisableAutoGenTag: true,
	}
	cmd.AddCommand(newGetItemsCommand(a), newGetPoliciesCommand(a))
	return cmd
}

func newGetItemsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item", "ri", "recycleitems"},
		Short:   "List recycle items",
		Example: `  krb-tui get items
  krb-tui get ri -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := getOutput(cmd, OutputTable, OutputYAML, OutputJSON)
			if err != nil {
				return err
			}
			gw, err := a.gateway()
			if err != nil {
				return err
			}
			items, err := gw.ListItems(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list recycle items: %w", err)
			}

			w := cmd.OutOrStdout()
			switch out {
			case OutputYAML:
				return writeYAML(w, items)
			case OutputJSON:
				return writeJSON(w, items)
			}
			if len(items) == 0 {
				fmt.Fprintln(w, "No recycle items found.")
				return nil
			}
			t := newTable(w)
			t.AppendHeader(table.Row{"Name", "Object Key", "Object APIVersion", "Object Kind", "Namespace", "Age"})
			for _, it := range items {
				t.AppendRow(table.Row{it.Name, it.ObjectKey, it.ObjectAPIVersion, it.ObjectKind, itemNamespace(it), format.Age(it.Age)})
			}
			t.Render()
			return nil
		},
	}
	outputFlag(cmd, OutputTable, OutputTable, OutputYAML, OutputJSON)
	return cmd
}

func newGetPoliciesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "policies",
		Aliases: []string{"policy", "rp", "recyclepolicies"},
		Short:   "List recycle policies",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := getOutput(cmd, OutputTable, OutputYAML, OutputJSON)
			if err != nil {
				return err
			}
			gw, err := a.gateway()
			if err != nil {
				return err
			}
			policies, err := gw.ListPolicies(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list recycle policies: %w", err)
			}

			w := cmd.OutOrStdout()
			switch out {
			case OutputYAML:
				return writeYAML(w, policies)
			case OutputJSON:
				return writeJSON(w, policies)
			}
			if len(policies) == 0 {
				fmt.Fprintln(w, "No recycle policies found.")
				return nil
			}
			t := newTable(w)
			t.AppendHeader(table.Row{"Name", "Target", "Namespaces", "Age"})
			for _, p := range policies {
				t.AppendRow(table.Row{p.Name, p.GroupResource().String(), policyNamespaces(p), format.Age(p.Age)})
			}
			t.Render()
			return nil
		},
	}
	outputFlag(cmd, OutputTable, OutputTable, OutputYAML, OutputJSON)
	return cmd
}

func itemNamespace(it domain.RecycleItem) string {
	if it.ClusterScoped() {
		return "(cluster)"
	}
	return it.ObjectNamespace
}

func policyNamespaces(p domain.RecyclePolicy) string {
	if p.AllNamespaces() {
		return "(all namespaces)"
	}
	return strings.Join(p.Namespaces, ",")
}
