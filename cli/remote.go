package cli

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/gear6io/sift/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newRemoteClient connects to the server named by the --server flag and
// verifies it answers before the command proceeds.
func newRemoteClient(cmd *cobra.Command) (*sdk.Client, error) {
	addr, _ := cmd.Flags().GetString("server")

	logger := zap.NewNop()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		if dev, err := zap.NewDevelopment(); err == nil {
			logger = dev
		}
	}

	return sdk.Open(&sdk.Options{Address: addr, Logger: logger})
}

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a CSV file and open a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newRemoteClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		info, err := client.UploadFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		pterm.Success.Printfln("Session %s opened", info.SessionID)
		renderInfo(info)
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean [session] [method]",
	Short: "Clean missing values (dropna or fillna)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newRemoteClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		column, _ := cmd.Flags().GetString("column")
		fillValue, _ := cmd.Flags().GetString("fill-value")

		info, err := client.Clean(cmd.Context(), sdk.CleanRequest{
			SessionID: args[0],
			Method:    args[1],
			Column:    column,
			FillValue: fillValue,
		})
		if err != nil {
			return err
		}

		renderInfo(info)
		return nil
	},
}

var filterCmd = &cobra.Command{
	Use:   "filter [session] [column] [operation] [value]",
	Short: "Keep rows matching a predicate (gt, lt, eq, contains)",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newRemoteClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		info, err := client.Filter(cmd.Context(), sdk.FilterRequest{
			SessionID: args[0],
			Column:    args[1],
			Operation: args[2],
			Value:     args[3],
		})
		if err != nil {
			return err
		}

		renderInfo(info)
		return nil
	},
}

var plotCmd = &cobra.Command{
	Use:   "plot [session] [x-axis]",
	Short: "Build a chart-ready series",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newRemoteClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		yAxis, _ := cmd.Flags().GetString("y-axis")
		chart, _ := cmd.Flags().GetString("chart")

		data, err := client.Plot(cmd.Context(), sdk.PlotRequest{
			SessionID: args[0],
			XAxis:     args[1],
			YAxis:     yAxis,
			ChartType: chart,
		})
		if err != nil {
			return err
		}

		pterm.DefaultSection.Println(data.Label)
		table := pterm.TableData{{"label", "value"}}
		for i, label := range data.Labels {
			table = append(table, []string{fmt.Sprint(label), formatStat(data.Values[i])})
		}
		pterm.DefaultTable.WithHasHeader().WithData(table).Render()
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats [session]",
	Short: "Descriptive statistics for the numeric columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newRemoteClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		stats, err := client.Stats(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			pterm.Info.Println("No numeric columns")
			return nil
		}

		data := pterm.TableData{statsHeader}
		for _, s := range stats {
			data = append(data, statRow(s.Column, s.Count, s.Mean, s.Std, s.Min, s.P25, s.P50, s.P75, s.Max))
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		return nil
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download [session]",
	Short: "Download the session's table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newRemoteClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		// Buffer the download so the server-suggested filename can
		// become the default output path.
		var buf bytes.Buffer
		suggested, err := client.Download(cmd.Context(), args[0], format, &buf)
		if err != nil {
			return err
		}

		if output == "" {
			output = suggested
		}
		if output == "" {
			output = "sift-download." + format
		}

		if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
			return err
		}

		pterm.Success.Printfln("Wrote %s (%d bytes)", output, buf.Len())
		return nil
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop [session]",
	Short: "Release a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newRemoteClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		pterm.Success.Printfln("Session %s released", args[0])
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the server's session counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newRemoteClient(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		status, err := client.Status(cmd.Context())
		if err != nil {
			return err
		}

		pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
			{"active", "created", "expired", "evicted", "deleted"},
			{
				strconv.Itoa(status.Sessions.Active),
				strconv.FormatInt(status.Sessions.Created, 10),
				strconv.FormatInt(status.Sessions.Expired, 10),
				strconv.FormatInt(status.Sessions.Evicted, 10),
				strconv.FormatInt(status.Sessions.Deleted, 10),
			},
		}).Render()
		return nil
	},
}

// renderInfo prints the shape report a session operation returned.
func renderInfo(info *sdk.TableInfo) {
	pterm.Info.Printfln("%s: %d rows, %d columns (session %s)",
		info.Filename, info.TotalRows, info.TotalColumns, info.SessionID)

	if len(info.Preview) > 0 {
		data := pterm.TableData{info.Columns}
		for _, row := range info.Preview {
			cells := make([]string, len(info.Columns))
			for i, col := range info.Columns {
				cells[i] = fmt.Sprint(row[col])
			}
			data = append(data, cells)
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}

	total := 0
	for _, n := range info.MissingValues {
		total += n
	}
	if total > 0 {
		pterm.Warning.Printfln("%d missing values", total)
	}
}

func init() {
	cleanCmd.Flags().String("column", "", "clean only this column")
	cleanCmd.Flags().String("fill-value", "", "replacement for missing cells (fillna)")
	plotCmd.Flags().String("y-axis", "", "numeric column to aggregate")
	plotCmd.Flags().String("chart", "bar", "chart type (bar, line, pie, scatter)")
	downloadCmd.Flags().String("format", "csv", "download format (csv or parquet)")
	downloadCmd.Flags().StringP("output", "o", "", "output path (default: server-suggested name)")

	rootCmd.AddCommand(uploadCmd, cleanCmd, filterCmd, plotCmd, statsCmd, downloadCmd, dropCmd, statusCmd)
}
