package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/glabrego/resh-cli/internal/app"
	"github.com/glabrego/resh-cli/internal/config"
	"github.com/glabrego/resh-cli/internal/listing"
	"github.com/glabrego/resh-cli/internal/logging"
	"github.com/glabrego/resh-cli/internal/reddit"
	"github.com/glabrego/resh-cli/internal/render"
	"github.com/glabrego/resh-cli/internal/shell"
)

var flags = struct {
	ConfigFile string
	PageSize   int
	ASCII      bool
	Sort       string
	LogPath    string
}{}

var root = &cobra.Command{
	Use:           "resh [subreddit]",
	Short:         "resh is a command-line shell for browsing reddit",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := logging.Init(cfg.LogPath, cfg.LogLevel); err != nil {
			return err
		}
		defer logging.Close()

		start := "frontpage"
		if len(args) > 0 {
			start = "subreddit " + args[0]
		}
		style := render.DefaultStyle(cfg.ASCIIOnly)
		model := shell.NewModel(newService(cfg, style), shell.Options{
			Style:   style,
			Timeout: cfg.RequestTimeout,
			Start:   start,
		})

		p := tea.NewProgram(model, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

var printCmd = &cobra.Command{
	Use:   "print <subreddit>",
	Short: "Print the first page of a subreddit and exit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := logging.Init(cfg.LogPath, cfg.LogLevel); err != nil {
			return err
		}
		defer logging.Close()

		svc := newService(cfg, render.DefaultStyle(cfg.ASCIIOnly))
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
		defer cancel()

		var l *listing.Listing
		name := strings.TrimPrefix(args[0], "r/")
		if name == "frontpage" {
			l, err = svc.Frontpage(ctx, "")
		} else {
			l, err = svc.Subreddit(ctx, name, "")
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), l.Render())
		return err
	},
}

func init() {
	pf := root.PersistentFlags()
	pf.StringVarP(&flags.ConfigFile, "config", "c", "", "configuration file (default "+config.DefaultPath()+")")
	pf.IntVar(&flags.PageSize, "page-size", config.DefaultPageSize, "items per page")
	pf.BoolVar(&flags.ASCII, "ascii", false, "only print ASCII characters")
	pf.StringVar(&flags.Sort, "sort", config.DefaultSort, "default listing sort ("+strings.Join(reddit.Sorts, ", ")+")")
	pf.StringVar(&flags.LogPath, "log", "", "log file path")
	root.AddCommand(printCmd)
}

// loadConfig applies flags the user set on top of file and environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("config error: %w", err)
	}
	f := cmd.Flags()
	if f.Changed("page-size") {
		cfg.PageSize = flags.PageSize
	}
	if f.Changed("ascii") {
		cfg.ASCIIOnly = flags.ASCII
	}
	if f.Changed("sort") {
		cfg.DefaultSort = flags.Sort
	}
	if f.Changed("log") {
		cfg.LogPath = flags.LogPath
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config error: %w", err)
	}
	return cfg, nil
}

func newService(cfg config.Config, style render.Style) *app.Service {
	client := reddit.NewClient(reddit.Options{
		BaseURL:           cfg.BaseURL(),
		UserAgent:         cfg.UserAgent,
		AccessToken:       cfg.AccessToken,
		RequestsPerMinute: cfg.RequestsPerMinute,
		Timeout:           cfg.RequestTimeout,
	})
	return app.NewService(app.NewRedditContent(client), listing.Options{
		PageSize: cfg.PageSize,
		Style:    style,
	}, cfg.DefaultSort)
}

func main() {
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
