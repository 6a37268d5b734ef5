package commands

import (
	"os"

	"registry-harvester/lib/scrapers/registry/core"
	"registry-harvester/lib/serviceutil"
	"registry-harvester/lib/sqliteutil"
	"registry-harvester/services/harvest"
	harvestdb "registry-harvester/services/harvest/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var crawlConfig *string

func init() {
	crawlConfig = crawlCmd.Flags().String("config", "config.json5", "The configuration file to use.")
	rootCmd.AddCommand(crawlCmd)
}

var crawlCmd = &cobra.Command{
	Use:   "crawl [--config <path/to/config.json5>]",
	Short: "Crawls the full student roster and stores every new record.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cfg, policy, err := readConfig(*crawlConfig)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		client, err := core.NewClient(ctx, core.ClientOptions{
			BaseUrl:            cfg.BaseUrl,
			InsecureSkipVerify: cfg.InsecureTls,
			Authenticator: core.BrowserAuthenticator{
				LoginUrl: cfg.loginUrl(),
			},
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize registry client", err)
		}

		database, err := sqliteutil.OpenDB(harvestdb.Schema, cfg.Database)
		if err != nil {
			serviceutil.Fatal("failed to open database", err)
		}
		defer database.Close()

		crawler := harvest.Crawler{
			Client:   client,
			Store:    harvest.NewStore(database),
			Policy:   policy,
			MaxPages: cfg.MaxPages,
		}
		counters, err := crawler.Run(ctx)
		renderCounters(counters)
		if err != nil {
			serviceutil.Fatal("crawl aborted", err)
		}
	},
}

func renderCounters(counters harvest.Counters) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"processed", "saved", "duplicates", "incomplete", "failed"})
	t.AppendRow(table.Row{
		counters.Processed,
		counters.Saved,
		counters.Duplicates,
		counters.Incomplete,
		counters.Failed,
	})
	t.Render()
}
