package main

import (
	"fmt"
	"log"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/spf13/cobra"
)

const (
	appName    = "rowview"
	appVersion = "0.1.0"
)

var (
	flags   = newFlags()
	rootCmd = &cobra.Command{
		Use:   appName,
		Short: "Inspect row windows of CSV, Excel and SQL data",
		Long: `rowview loads a row batch from a CSV or Excel file or an SQL query,
opens a message window on it and prints, slices or copies that window.`,
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, appVersion)
		},
	}
)

func init() {
	initFlags()
	rootCmd.AddCommand(
		versionCmd,
		columnsCmd,
		showCmd,
		sliceCmd,
		copyCmd,
		sqlCmd,
	)
}

func initFlags() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.Input, "input", "i", "", "CSV or Excel (.xlsx) file to read")
	pf.StringVar(&flags.Driver, "driver", "duckdb", "database/sql driver for --query")
	pf.StringVar(&flags.DSN, "dsn", "", "Data source name for --driver")
	pf.StringVarP(&flags.Query, "query", "q", "", "SQL query returning the rows to load")
	pf.StringVarP(&flags.Config, "config", "c", "", "YAML config file")
	pf.IntVar(&flags.Offset, "offset", 0, "Index of the first row of the message window")
	pf.IntVar(&flags.Count, "count", -1, "Number of rows of the message window, -1 for all rows after offset")
	pf.StringVarP(&flags.Format, "format", "f", "csv", "Output format: csv, html or xlsx")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
