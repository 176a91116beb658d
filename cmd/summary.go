package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/KaramelBytes/dasbor/internal/analysis"
	"github.com/KaramelBytes/dasbor/internal/dashboard"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var sumHeadRows int

var summaryCmd = &cobra.Command{
	Use:   "summary [file]",
	Short: "Print the data preview, statistics and column lists to the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.DataPath
		if len(args) == 1 {
			path = args[0]
		}
		head := cfg.HeadRows
		if cmd.Flags().Changed("head") {
			head = sumHeadRows
		}
		t, err := analysis.Load(path)
		if err != nil {
			log.WithError(err).Debug("load dataset")
			return errors.New(dashboard.LoadErrorMessage(err))
		}
		cls := analysis.Classify(t)
		v, err := dashboard.BuildSummary(t, cls, head)
		if err != nil {
			return err
		}
		writeSummary(cmd.OutOrStdout(), t, cls, v)
		return nil
	},
}

func writeSummary(w io.Writer, t *analysis.Table, cls analysis.Classification, v *dashboard.SummaryView) {
	fmt.Fprintf(w, "✓ Loaded %s: %d rows, %d columns\n\n", t.Name, t.Rows(), len(t.Columns))

	fmt.Fprintf(w, "Data preview (first %d rows)\n", len(v.Head))
	preview := tablewriter.NewWriter(w)
	preview.SetAutoFormatHeaders(false)
	preview.SetHeader(append([]string{""}, v.Columns...))
	for i, row := range v.Head {
		preview.Append(append([]string{strconv.Itoa(i)}, row...))
	}
	preview.Render()

	fmt.Fprintln(w, "\nDescriptive statistics")
	if v.StatsWarning != "" {
		fmt.Fprintf(w, "⚠ %s\n", v.StatsWarning)
	} else {
		stats := tablewriter.NewWriter(w)
		stats.SetAutoFormatHeaders(false)
		stats.SetAlignment(tablewriter.ALIGN_RIGHT)
		stats.SetHeader(append([]string{""}, v.Numeric...))
		for i, name := range v.StatNames {
			stats.Append(append([]string{name}, v.Stats[i]...))
		}
		stats.Render()
	}

	fmt.Fprintf(w, "\nNumeric columns: %q\n", v.Numeric)
	fmt.Fprintf(w, "Categorical columns: %q\n", v.Categorical)
	if len(v.Other) > 0 {
		fmt.Fprintf(w, "Other columns: %q\n", v.Other)
	}

	fmt.Fprintln(w)
	metrics := tablewriter.NewWriter(w)
	metrics.SetAutoFormatHeaders(false)
	metrics.SetHeader([]string{"Metric", "Value"})
	for _, m := range dashboard.Metrics(t, cls) {
		metrics.Append([]string{m.Label, strconv.Itoa(m.Value)})
	}
	metrics.Render()
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().IntVar(&sumHeadRows, "head", 10, "number of preview rows (overrides head_rows)")
}
