package commands

import (
	"log/slog"
	"os"

	"registry-harvester/lib/serviceutil"
	"registry-harvester/lib/sqliteutil"
	"registry-harvester/services/harvest"
	harvestdb "registry-harvester/services/harvest/db"

	"github.com/spf13/cobra"
)

var (
	exportConfig *string
	exportOut    *string
)

func init() {
	exportConfig = exportCmd.Flags().String("config", "config.json5", "The configuration file to use.")
	exportOut = exportCmd.Flags().String("out", "students_export.csv", "The CSV file to write.")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [--out <path/to/students_export.csv>]",
	Short: "Exports every stored student record to CSV.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cfg, policy, err := readConfig(*exportConfig)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		database, err := sqliteutil.OpenDB(harvestdb.Schema, cfg.Database)
		if err != nil {
			serviceutil.Fatal("failed to open database", err)
		}
		defer database.Close()

		out, err := os.Create(*exportOut)
		if err != nil {
			serviceutil.Fatal("failed to create output file", err)
		}
		defer out.Close()

		count, err := harvest.ExportCSV(
			ctx,
			harvest.NewStore(database),
			policy.Defaults.InstitutionName,
			out,
		)
		if err != nil {
			serviceutil.Fatal("failed to export students", err)
		}
		slog.Info("data exported", "records", count, "file", *exportOut)
	},
}
