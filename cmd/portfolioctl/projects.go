package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/filter"
)

func (c *cli) listCmd() *cobra.Command {
	var status string
	var techs []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			crit, err := filter.ParseCriteria(status, techs)
			if err != nil {
				return err
			}
			coord, err := c.session(cmd.Context())
			if err != nil {
				return err
			}
			return c.printProjects(coord.View(crit))
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Finished or InProgress")
	cmd.Flags().StringSliceVar(&techs, "tech", nil, "technology the project must use (repeatable)")
	return cmd
}

func (c *cli) techsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "techs",
		Short: "List the technologies used across all projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			coord, err := c.session(cmd.Context())
			if err != nil {
				return err
			}
			techs := coord.Technologies()
			if c.asJSON {
				return json.NewEncoder(c.out).Encode(techs)
			}
			for _, t := range techs {
				fmt.Fprintln(c.out, t)
			}
			return nil
		},
	}
}

func draftFlags(cmd *cobra.Command, d *domain.Draft) {
	cmd.Flags().StringVar(&d.Title, "title", "", "project title")
	cmd.Flags().StringVar(&d.Description, "description", "", "project description")
	cmd.Flags().StringVar(&d.Technologies, "technologies", "", "comma separated technologies")
	cmd.Flags().StringVar(&d.RepositoryLink, "github", "", "https://github.com/... link")
	cmd.Flags().StringVar(&d.Status, "status", "", "Finished or InProgress")
}

func (c *cli) addCmd() *cobra.Command {
	var draft domain.Draft
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			coord, err := c.session(cmd.Context())
			if err != nil {
				return err
			}
			p, err := coord.Add(cmd.Context(), draft)
			if err != nil {
				return err
			}
			return c.printProjects([]domain.Project{p})
		},
	}
	draftFlags(cmd, &draft)
	return cmd
}

func (c *cli) editCmd() *cobra.Command {
	var draft domain.Draft
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a project; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := c.session(cmd.Context())
			if err != nil {
				return err
			}
			current, ok := find(coord.Records(), args[0])
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrNotFound, args[0])
			}

			merged := domain.DraftFromProject(current)
			flags := cmd.Flags()
			if flags.Changed("title") {
				merged.Title = draft.Title
			}
			if flags.Changed("description") {
				merged.Description = draft.Description
			}
			if flags.Changed("technologies") {
				merged.Technologies = draft.Technologies
			}
			if flags.Changed("github") {
				merged.RepositoryLink = draft.RepositoryLink
			}
			if flags.Changed("status") {
				merged.Status = draft.Status
			}

			p, err := coord.Edit(cmd.Context(), args[0], merged)
			if err != nil {
				return err
			}
			return c.printProjects([]domain.Project{p})
		},
	}
	draftFlags(cmd, &draft)
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := c.session(cmd.Context())
			if err != nil {
				return err
			}
			if err := coord.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "deleted %s\n", args[0])
			return nil
		},
	}
}

func (c *cli) printProjects(list []domain.Project) error {
	if c.asJSON {
		if list == nil {
			list = []domain.Project{}
		}
		return json.NewEncoder(c.out).Encode(list)
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tTECHNOLOGIES\tGITHUB")
	for _, p := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Title, p.EffectiveStatus(), strings.Join(p.Technologies, ", "), p.RepositoryLink)
	}
	return w.Flush()
}

func find(list []domain.Project, id string) (domain.Project, bool) {
	for _, p := range list {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Project{}, false
}
