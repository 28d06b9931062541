package main

import (
	"fmt"
	"sort"

	"github.com/fvbommel/sortorder"
	"github.com/spf13/cobra"

	"github.com/domonda/go-rowview"
	"github.com/domonda/go-rowview/sqltable"
)

var (
	columnsNatural bool
	columnsCmd     = &cobra.Command{
		Use:   "columns",
		Short: "List the column names of the batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := loadMessage(cmd.Context(), flags)
			if err != nil {
				return err
			}
			names := msg.ColumnNames()
			if columnsNatural {
				sort.Sort(sortorder.Natural(names))
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	showCmd = &cobra.Command{
		Use:   "show [columns...]",
		Short: "Print the rows of the message window",
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := loadMessage(cmd.Context(), flags)
			if err != nil {
				return err
			}
			view, err := msg.Read(args...)
			if err != nil {
				return err
			}
			return writeView(cmd.Context(), cmd.OutOrStdout(), flags.Format, view)
		},
	}

	sliceStart, sliceStop int
	sliceCmd              = &cobra.Command{
		Use:   "slice",
		Short: "Print the rows [start,stop) of the message window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := loadMessage(cmd.Context(), flags)
			if err != nil {
				return err
			}
			sliced, err := rowview.Slice(msg, sliceStart, sliceStop)
			if err != nil {
				return err
			}
			return writeMessage(cmd.Context(), cmd.OutOrStdout(), flags.Format, sliced)
		},
	}

	copyRanges string
	copyCmd    = &cobra.Command{
		Use:   "copy",
		Short: "Copy row ranges of the message window into a new batch and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ranges, err := parseRanges(copyRanges)
			if err != nil {
				return err
			}
			msg, err := loadMessage(cmd.Context(), flags)
			if err != nil {
				return err
			}
			copied, err := rowview.CopyRanges(msg, ranges, rowview.SumRanges(ranges))
			if err != nil {
				return err
			}
			return writeMessage(cmd.Context(), cmd.OutOrStdout(), flags.Format, copied)
		},
	}

	sqlTableName string
	sqlCmd       = &cobra.Command{
		Use:   "sql QUERY",
		Short: "Run a SELECT query against the message window",
		Long: `Runs a query like "SELECT a, b FROM batch LIMIT 10 OFFSET 5"
against the message window served as table named by --table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := loadMessage(cmd.Context(), flags)
			if err != nil {
				return err
			}
			db := sqltable.NewMessageDB(sqlTableName, msg)
			defer db.Close()
			table, err := sqltable.QueryTable(cmd.Context(), db, args[0])
			if err != nil {
				return err
			}
			return writeView(cmd.Context(), cmd.OutOrStdout(), flags.Format, table)
		},
	}
)

func init() {
	columnsCmd.Flags().BoolVar(&columnsNatural, "natural", false, "Sort column names in natural order")

	sliceCmd.Flags().IntVar(&sliceStart, "start", 0, "First row relative to the message window")
	sliceCmd.Flags().IntVar(&sliceStop, "stop", 1, "Row after the last row relative to the message window")

	copyCmd.Flags().StringVar(&copyRanges, "ranges", "", "Comma separated start:stop row ranges relative to the message window")
	_ = copyCmd.MarkFlagRequired("ranges")

	sqlCmd.Flags().StringVar(&sqlTableName, "table", "batch", "Table name of the message window in the query")
}
