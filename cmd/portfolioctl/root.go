package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/auth"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/github"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/repository"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/projects/service"
)

type cli struct {
	out       io.Writer
	serverURL string
	uid       string
	token     string
	asJSON    bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:   "portfolioctl",
		Short: "Manage a portfolio through the portfolio server",
		Long: `portfolioctl lists and edits the projects of one portfolio owner and
imports projects from GitHub, using the server's /projects and
/github/repos endpoints.

Examples:
  # List finished Go projects
  portfolioctl --uid abc123 list --status Finished --tech Go

  # Import two repositories
  portfolioctl --uid abc123 search octocat
  portfolioctl --uid abc123 import octocat --repo 1296269 --repo 64778136`,
		Version:       version,
		SilenceUsage:  true,
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&c.serverURL, "server", envOr("PORTFOLIO_SERVER", "http://localhost:8080"), "portfolio server URL")
	root.PersistentFlags().StringVar(&c.uid, "uid", os.Getenv("PORTFOLIO_UID"), "portfolio owner id")
	root.PersistentFlags().StringVar(&c.token, "token", os.Getenv("PORTFOLIO_TOKEN"), "ID token sent on writes")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print results as JSON")

	root.AddCommand(
		c.listCmd(),
		c.techsCmd(),
		c.addCmd(),
		c.editCmd(),
		c.deleteCmd(),
		c.searchCmd(),
		c.importCmd(),
	)
	return root
}

// session logs the configured owner in and returns a loaded coordinator.
func (c *cli) session(ctx context.Context) (*service.Coordinator, error) {
	if c.uid == "" {
		return nil, fmt.Errorf("--uid is required")
	}

	coord := service.NewCoordinator(
		repository.NewRemoteStore(c.serverURL, c.token),
		service.WithSource(github.NewProxyClient(c.serverURL)),
	)

	provider := auth.NewStaticProvider(auth.Identity{UserID: c.uid})
	if err := coord.Watch(ctx, provider.Events()); err != nil {
		return nil, err
	}
	if _, ok := coord.Owner(); !ok {
		return nil, fmt.Errorf("could not load projects for %s from %s", c.uid, c.serverURL)
	}
	return coord, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
