// Package render writes battery results as aligned text tables or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jcmexdev/pizza-sales/internal/battery"
	"github.com/jcmexdev/pizza-sales/internal/runlog"
)

// Text writes one titled table per section.
func Text(w io.Writer, res *battery.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, sec := range res.Sections {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "== %s\n", sec.Title)
		fmt.Fprintln(tw, strings.ToUpper(strings.Join(sec.Columns, "\t")))
		if len(sec.Rows) == 0 {
			fmt.Fprintln(tw, "(no rows)")
			continue
		}
		for _, row := range sec.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// JSON writes the whole result as one indented document.
func JSON(w io.Writer, res *battery.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// RunLog writes the entries of one run as a single table.
func RunLog(w io.Writer, entries []runlog.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(entries) > 0 {
		fmt.Fprintf(tw, "== Run %s\n", entries[0].RunID)
	}
	fmt.Fprintln(tw, "UPDATED_AT\tSTATUS\tREPORT\tROWS\tELAPSED\tTRACE_ID\tERROR")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			e.UpdatedAt.Format(time.RFC3339Nano), e.Status, e.Report, e.Rows, e.Elapsed, e.TraceID, e.Error)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// RunLogJSON writes the entries as an indented JSON array.
func RunLogJSON(w io.Writer, entries []runlog.Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
