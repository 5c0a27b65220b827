package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *cli) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <username>",
		Short: "List a GitHub user's repositories, most starred first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := c.session(cmd.Context())
			if err != nil {
				return err
			}
			repos, err := coord.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if c.asJSON {
				return json.NewEncoder(c.out).Encode(repos)
			}

			w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTARS\tLANGUAGE\tTOPICS")
			for _, r := range repos {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", r.ID, r.Name, r.Stars, r.Language, strings.Join(r.Topics, ","))
			}
			return w.Flush()
		},
	}
}

func (c *cli) importCmd() *cobra.Command {
	var repoIDs []int64
	cmd := &cobra.Command{
		Use:   "import <username>",
		Short: "Import repositories as projects; no --repo imports all of them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := c.session(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := coord.Search(cmd.Context(), args[0]); err != nil {
				return err
			}
			imported, err := coord.ImportSelected(cmd.Context(), repoIDs)
			if err != nil {
				return err
			}
			if !c.asJSON {
				fmt.Fprintf(c.out, "imported %d project(s)\n", len(imported))
			}
			return c.printProjects(imported)
		},
	}
	cmd.Flags().Int64SliceVar(&repoIDs, "repo", nil, "repository id to import (repeatable)")
	return cmd
}
