package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/wcrum/krb-tui/internal/domain"
)

const (
	FlagResource   = "resource"
	FlagGroup      = "group"
	FlagNamespaces = "namespaces"
)

func newRestoreCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "restore NAME...",
		Aliases: []string{"rs"},
		Short:   "Restore the objects held by recycle items",
		Example: `  krb-tui restore foo bar`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := a.gateway()
			if err != nil {
				return err
			}
			failed := false
			for _, name := range args {
				msg, err := gw.RestoreItem(cmd.Context(), name)
				if err != nil {
					failure(cmd.ErrOrStderr(), "failed to restore RecycleItem [%s]: %v", name, err)
					failed = true
					continue
				}
				success(cmd.OutOrStdout(), "%s", orDefault(msg, "restored RecycleItem ["+name+"]"))
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}
}

func newCreateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "create",
		Short:             "Create a recycle policy",
		Args:              cobra.NoArgs,
		DisableAutoGenTag: true,
	}

	policy := &cobra.Command{
		Use:     "policy NAME",
		Aliases: []string{"rp", "recyclepolicy"},
		Short:   "Create a recycle policy capturing deletions of one resource",
		Example: `  # Recycle deleted deployments in two namespaces
  krb-tui create policy deployments --group apps --resource deployments --namespaces dev,staging

  # Recycle deleted configmaps everywhere
  krb-tui create policy configmaps --resource configmaps`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			group, _ := f.GetString(FlagGroup)
			resource, _ := f.GetString(FlagResource)
			namespaces, _ := f.GetStringSlice(FlagNamespaces)

			spec := domain.PolicySpec{
				Name:       strings.TrimSpace(args[0]),
				Group:      strings.TrimSpace(group),
				Resource:   strings.TrimSpace(resource),
				Namespaces: domain.ParseNamespaces(strings.Join(namespaces, ",")),
			}
			if spec.Name == "" || spec.Resource == "" {
				failure(cmd.ErrOrStderr(), "name and --%s are required", FlagResource)
				return errFailed
			}

			gw, err := a.gateway()
			if err != nil {
				return err
			}
			msg, err := gw.CreatePolicy(cmd.Context(), spec)
			if err != nil {
				failure(cmd.ErrOrStderr(), "failed to create RecyclePolicy [%s]: %v", spec.Name, err)
				return errFailed
			}
			success(cmd.OutOrStdout(), "%s", orDefault(msg, "created RecyclePolicy ["+spec.Name+"]"))
			return nil
		},
	}
	policy.Flags().String(FlagResource, "", "resource to recycle, e.g. deployments")
	policy.Flags().String(FlagGroup, "", "API group of the resource, empty for the core group")
	policy.Flags().StringSlice(FlagNamespaces, nil, "namespaces to watch, empty for all")

	cmd.AddCommand(policy)
	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "delete",
		Short:             "Delete recycle policies",
		Args:              cobra.NoArgs,
		DisableAutoGenTag: true,
	}

	policy := &cobra.Command{
		Use:     "policy NAME...",
		Aliases: []string{"policies", "rp"},
		Short:   "Delete recycle policies",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := a.gateway()
			if err != nil {
				return err
			}
			failed := false
			for _, name := range args {
				msg, err := gw.DeletePolicy(cmd.Context(), name)
				if err != nil {
					failure(cmd.ErrOrStderr(), "failed to delete RecyclePolicy [%s]: %v", name, err)
					failed = true
					continue
				}
				success(cmd.OutOrStdout(), "%s", orDefault(msg, "deleted RecyclePolicy ["+name+"]"))
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}

	cmd.AddCommand(policy)
	return cmd
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
