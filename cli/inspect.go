package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gear6io/sift/server/storage/parquet"
	"github.com/gear6io/sift/server/tabular"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Analyze a local CSV file",
	Long: `Inspect reads a CSV file, reports its shape, missing values, a preview
and descriptive statistics, all without a server. With --export it also
writes the table out as CSV or Parquet.

Examples:
  sift inspect data.csv
  sift inspect data.csv --export data.parquet
  sift inspect data.csv --export data.parquet --compression gzip --compression-level 9`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Int("max-rows", 0, "refuse files with more data rows (0 = unlimited)")
	inspectCmd.Flags().String("export", "", "write the table to this .csv or .parquet file")
	inspectCmd.Flags().String("compression", "zstd", "parquet compression codec")
	inspectCmd.Flags().Int("compression-level", 3, "parquet compression level")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	maxRows, _ := cmd.Flags().GetInt("max-rows")

	logger := loggerFromContext(cmd.Context())
	logger.Debug().Str("cmd", "inspect").Str("file", path).Msg("Inspecting file")

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	table, err := tabular.ReadCSV(f, tabular.ReadOptions{MaxRows: maxRows})
	if err != nil {
		return err
	}

	renderSummary(filepath.Base(path), table.Summarize())
	renderStats(table.Describe())

	if export, _ := cmd.Flags().GetString("export"); export != "" {
		compression, _ := cmd.Flags().GetString("compression")
		level, _ := cmd.Flags().GetInt("compression-level")
		if err := exportTable(table, export, compression, level); err != nil {
			return err
		}
		pterm.Success.Printfln("Exported %d rows to %s", table.NumRows(), export)
	}

	return nil
}

// renderSummary prints the shape, preview and missing counts of a
// table.
func renderSummary(name string, summary *tabular.Summary) {
	pterm.DefaultSection.Println(name)
	pterm.Info.Printfln("%d rows, %d columns", summary.TotalRows, summary.TotalColumns)

	if len(summary.Preview) > 0 {
		data := pterm.TableData{summary.Columns}
		for _, row := range summary.Preview {
			cells := make([]string, len(summary.Columns))
			for i, col := range summary.Columns {
				cells[i] = fmt.Sprint(row[col])
			}
			data = append(data, cells)
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}

	missing := pterm.TableData{{"column", "missing"}}
	total := 0
	for _, col := range summary.Columns {
		if n := summary.MissingValues[col]; n > 0 {
			missing = append(missing, []string{col, strconv.Itoa(n)})
			total += n
		}
	}
	if total > 0 {
		pterm.Warning.Printfln("%d missing values", total)
		pterm.DefaultTable.WithHasHeader().WithData(missing).Render()
	}
}

var statsHeader = []string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}

func statRow(column string, values ...float64) []string {
	row := make([]string, 0, len(values)+1)
	row = append(row, column)
	for _, v := range values {
		row = append(row, formatStat(v))
	}
	return row
}

// renderStats prints the describe() table for numeric columns.
func renderStats(stats []tabular.ColumnStats) {
	if len(stats) == 0 {
		return
	}

	data := pterm.TableData{statsHeader}
	for _, s := range stats {
		data = append(data, statRow(s.Column, s.Count, s.Mean, s.Std, s.Min, s.P25, s.P50, s.P75, s.Max))
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// exportTable writes the table in the format the file extension names.
func exportTable(table *tabular.Table, path, compression string, level int) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if strings.HasSuffix(path, ".parquet") {
		cfg := &parquet.Config{Compression: compression, CompressionLevel: level}
		return parquet.Write(out, table, cfg)
	}
	return table.WriteCSV(out)
}
