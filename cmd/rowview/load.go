package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-rowview"
	"github.com/domonda/go-rowview/csvtable"
	"github.com/domonda/go-rowview/exceltable"
	"github.com/domonda/go-rowview/sqltable"
)

// loadMessage loads the batch selected by flags,
// preallocates the configured columns and
// returns the message window of flags.
func loadMessage(ctx context.Context, flags *Flags) (*rowview.Message, error) {
	config, err := loadConfig(flags.Config)
	if err != nil {
		return nil, err
	}
	table, err := loadTable(ctx, flags, config)
	if err != nil {
		return nil, err
	}
	added, err := rowview.Preallocate(table, config.NeededColumns)
	if err != nil {
		return nil, err
	}
	if len(added) > 0 {
		log.Printf("added columns: %s", strings.Join(added, ", "))
	}
	if flags.Count < 0 {
		return rowview.NewMessage(table, flags.Offset)
	}
	return rowview.NewMessageWindow(table, flags.Offset, flags.Count)
}

func loadTable(ctx context.Context, flags *Flags, config *Config) (*rowview.Table, error) {
	switch {
	case flags.Input != "" && flags.Query != "":
		return nil, errors.New("only one of --input and --query can be used")

	case flags.Input != "":
		file := fs.File(flags.Input)
		if !file.Exists() {
			return nil, fmt.Errorf("input file %s does not exist", file)
		}
		switch strings.ToLower(file.Ext()) {
		case ".xlsx", ".xlsm", ".xltx", ".xltm":
			return exceltable.ReadFirstSheetFile(file, config.RawExcelCells)
		}
		if config.CSV != nil {
			data, err := file.ReadAll()
			if err != nil {
				return nil, err
			}
			return csvtable.ReadTableWithFormat(data, config.CSV)
		}
		table, format, err := csvtable.ReadTableFile(file, nil)
		if err != nil {
			return nil, err
		}
		log.Printf("detected CSV format of %s: encoding %s, separator %q", file.Name(), format.Encoding, format.Separator)
		return table, nil

	case flags.Query != "":
		db, err := sql.Open(flags.Driver, flags.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s database: %w", flags.Driver, err)
		}
		defer db.Close()
		return sqltable.QueryTable(ctx, db, flags.Query)
	}
	return nil, errors.New("either --input or --query is needed")
}

// parseRanges parses comma separated ranges like "0:2,3:5".
func parseRanges(str string) ([]rowview.Range, error) {
	var ranges []rowview.Range
	for part := range strings.SplitSeq(str, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var r rowview.Range
		if _, err := fmt.Sscanf(part, "%d:%d", &r.Start, &r.Stop); err != nil {
			return nil, fmt.Errorf("invalid range %q, expected start:stop", part)
		}
		ranges = append(ranges, r)
	}
	if len(ranges) == 0 {
		return nil, errors.New("no ranges")
	}
	return ranges, nil
}
