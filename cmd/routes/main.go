package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"delivery_admin_echo/internal/router"
)

func main() {
	if err := newRootCmd(router.DefaultTable()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(table *router.Table) *cobra.Command {
	root := &cobra.Command{
		Use:          "routes",
		Short:        "Inspect the dashboard route table",
		SilenceUsage: true,
	}
	root.AddCommand(newListCmd(table), newResolveCmd(table))
	return root
}

func newListCmd(table *router.Table) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every routable pattern",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRoutes(cmd.OutOrStdout(), table.Routes())
		},
	}
}

func newResolveCmd(table *router.Table) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>...",
		Short: "Show which view each path renders",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			missed := 0
			for _, path := range args {
				match, err := table.Resolve(path)
				if errors.Is(err, router.ErrNoRoute) {
					missed++
				} else if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatMatch(path, match))
			}
			if missed > 0 {
				return fmt.Errorf("%d of %d paths did not match", missed, len(args))
			}
			return nil
		},
	}
}

func printRoutes(w io.Writer, routes []router.RouteInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATTERN\tVIEW\tENTITY\tPARAMS")
	for _, r := range routes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Pattern, r.View, orDash(r.Entity), orDash(strings.Join(r.Params, ",")))
	}
	return tw.Flush()
}

func formatMatch(path string, m router.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s -> %s", path, m.View)
	if m.Entity != "" {
		fmt.Fprintf(&b, " entity=%s", m.Entity)
	}
	if m.Pattern != "" {
		fmt.Fprintf(&b, " pattern=%s", m.Pattern)
	}
	names := make([]string, 0, len(m.Params))
	for name := range m.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, " %s=%s", name, m.Params[name])
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
