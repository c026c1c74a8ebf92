package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"feedmedia/api"
	"feedmedia/api/handlers"
	"feedmedia/infrastructure/logger/structured"
	"feedmedia/pkg/config"
	"github.com/spf13/cobra"
)

// cli holds flags and the app shared by all commands
type cli struct {
	configPath string
	verbose    bool
	app        *app
}

func newCLI() *cli {
	return &cli{}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "feedmedia",
		Short:         "Fetch feeds and pages and extract the media they reference",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.app == nil {
				return nil
			}
			return c.app.Close()
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.feedCommand())
	root.AddCommand(c.mediaCommand())
	root.AddCommand(c.entryCommand())
	root.AddCommand(c.downloadCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())

	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := cfg.Log.Level
	if c.verbose {
		level = "debug"
	}
	logger := structured.New(structured.Options{
		Level:  level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})

	c.app = newApp(cfg, logger, c.verbose)
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func (c *cli) checkCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "check URL",
		Short: "Probe a media URL with HEAD and report accessibility and size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := c.app.access.CheckAccessibility(cmd.Context(), args[0], !noCache)
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the response cache")
	return cmd
}

func (c *cli) feedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "feed URL",
		Short: "Fetch and parse a feed, listing its entries and media",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := c.app.feeds.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), items)
		},
	}
}

func (c *cli) mediaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "media URL...",
		Short: "Download pages and extract their images and videos",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return printJSON(cmd.OutOrStdout(), c.app.pipeline.FetchAndExtractMedia(cmd.Context(), args[0]))
			}
			return printJSON(cmd.OutOrStdout(), c.app.pipeline.FetchAll(cmd.Context(), args))
		},
	}
}

func (c *cli) entryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "entry [FILE]",
		Short: "Extract metadata from an RSS item or Atom entry read from FILE or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read fragment: %w", err)
			}

			entry := c.app.parser.ExtractEntry(string(data))
			if entry == nil {
				return fmt.Errorf("no parser accepted the fragment")
			}
			return printJSON(cmd.OutOrStdout(), entry)
		},
	}
}

func (c *cli) downloadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "download URL DEST",
		Short: "Stream a file to DEST, replacing it only after a complete download",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, msg := c.app.access.DownloadToFile(cmd.Context(), args[0], args[1])
			if !ok {
				return fmt.Errorf("download %s: %s", args[0], msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", args[1])
			return nil
		},
	}
}

func (c *cli) analyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze URL",
		Short: "Extract media from a page, probe each item and group it into delivery batches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found := c.app.pipeline.FetchAndExtractMedia(cmd.Context(), args[0])
			analyzed := c.app.pipeline.Analyze(cmd.Context(), found)
			return printJSON(cmd.OutOrStdout(), c.app.pipeline.Batch(analyzed))
		},
	}
}

func (c *cli) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the response cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show total and still-valid cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := c.app.access.CacheStats(cmd.Context())
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"total_entries": stats.TotalEntries,
				"valid_entries": stats.ValidEntries,
				"cache_ttl":     stats.TTL.Seconds(),
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.access.ClearCache(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	})

	return cmd
}

func (c *cli) serveCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP inspection API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			if port == "" {
				port = a.cfg.Server.Port
			}

			h := handlers.NewHandler(a.access, a.pipeline, a.feeds, a.parser, a.logger)
			router := api.NewRouter(h, api.APIConfig{
				Logger:         a.logger,
				RateLimit:      a.cfg.Server.RateLimit,
				RateBurst:      a.cfg.Server.RateBurst,
				TrustedProxies: a.cfg.Server.TrustedProxies,
			})

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if c.configPath != "" {
				go c.watchConfig(ctx)
			}

			return api.NewServer(":"+port, router, a.logger).Run(ctx)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (defaults to server.port)")
	return cmd
}

// watchConfig applies log level changes from the config file while serving.
// Other settings need a restart.
func (c *cli) watchConfig(ctx context.Context) {
	logger := c.app.logger
	err := config.Watch(ctx, c.configPath, func(cfg *config.Config) {
		if c.verbose {
			return
		}
		logger.SetLevel(cfg.Log.Level)
		logger.Info("Configuration reloaded", map[string]interface{}{
			"log_level": logger.Level(),
		})
	}, func(err error) {
		logger.Warn("Ignoring invalid configuration change", map[string]interface{}{
			"error": err.Error(),
		})
	})
	if err != nil {
		logger.Error("Config watch stopped", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
