package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/battlewithbytes/dtb-selector/internal/history"
	"github.com/battlewithbytes/dtb-selector/internal/ui"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previous runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !cfg.History {
			fmt.Fprintln(out, ui.Dim.Render("History is disabled."))
			return nil
		}
		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer store.Close()

		runs, err := store.List(historyLimit)
		if err != nil {
			return fmt.Errorf("listing history: %w", err)
		}
		if len(runs) == 0 {
			fmt.Fprintln(out, ui.Dim.Render("No runs recorded yet."))
			return nil
		}
		if last, err := store.Last(); err == nil && last != nil {
			fmt.Fprintln(out, ui.Cyan.Render("Last applied: ")+ui.White.Render(last.DisplayName)+ui.Dim.Render(" ("+last.Console+")"))
		}
		renderHistory(out, runs)
		return nil
	},
}

func renderHistory(w io.Writer, runs []*history.Run) {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		lang := r.Language
		if lang == "" {
			lang = "-"
		}
		status := r.Status
		if r.Error != "" {
			status += ": " + r.Error
		}
		extras := strings.Join(r.Extras, ", ")
		if extras == "" {
			extras = "-"
		}
		rows = append(rows, []string{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.DisplayName,
			r.Brand,
			lang,
			fmt.Sprintf("%d", r.Files),
			extras,
			status,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(ui.Dim).
		BorderHeader(true).
		BorderRow(false).
		Headers("When", "Console", "Brand", "Lang", "Files", "Extras", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return ui.Cyan.Bold(true).Padding(0, 1)
			}
			if col == 6 && runs[row].Status == history.StatusFailed {
				return ui.Red.Padding(0, 1)
			}
			return ui.White.Padding(0, 1)
		})

	fmt.Fprintln(w, t.Render())
}
