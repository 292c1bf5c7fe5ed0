package main

import (
	"encoding/json"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// listing is a command result: table columns and rows for humans, and the
// decoded API value for --output json.
type listing struct {
	columns []string
	rows    []table.Row
	raw     any
}

var headerCaser = cases.Title(language.English)

// header turns a field name like "engine_id" into "Engine Id".
func header(column string) string {
	return headerCaser.String(strings.ReplaceAll(column, "_", " "))
}

func (a *app) print(l listing) error {
	if a.v.GetString("output") == "json" {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(l.raw)
	}

	t := table.NewWriter()
	t.SetOutputMirror(a.out)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault

	headers := make(table.Row, len(l.columns))
	for i, c := range l.columns {
		headers[i] = header(c)
	}
	t.AppendHeader(headers)
	t.AppendRows(l.rows)
	t.Render()
	return nil
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
