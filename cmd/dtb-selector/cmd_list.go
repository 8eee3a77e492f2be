package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/battlewithbytes/dtb-selector/internal/catalog"
)

var listBrand string

func init() {
	listCmd.Flags().StringVar(&listBrand, "brand", "", "only list consoles of this brand")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List brands and their consoles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		brands := cat.Brands()
		if listBrand != "" {
			brands = []string{listBrand}
		}
		renderList(cmd.OutOrStdout(), cat, brands)
		return nil
	},
}

func renderList(w io.Writer, cat *catalog.Catalog, brands []string) {
	var b strings.Builder
	for _, brand := range brands {
		b.WriteString(text.Bold.Sprint(brand) + "\n")
		choices := cat.ConsolesForBrand(brand)
		if len(choices) == 0 {
			b.WriteString(text.FgHiBlack.Sprint("  no consoles") + "\n\n")
			continue
		}

		tw := table.NewWriter()
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"#", "Console", "Directory", "Extra sources"})
		for i, ch := range choices {
			extras := strings.Join(ch.Console.ExtraSources, ", ")
			if extras == "" {
				extras = "-"
			}
			tw.AppendRow(table.Row{i + 1, ch.DisplayName, ch.Console.RealName, extras})
		}
		b.WriteString(tw.Render())
		b.WriteString("\n\n")
	}
	fmt.Fprint(w, b.String())
}
