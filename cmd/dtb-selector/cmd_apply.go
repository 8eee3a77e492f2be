package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/battlewithbytes/dtb-selector/internal/selector"
	"github.com/battlewithbytes/dtb-selector/internal/ui"
)

var (
	applyConsole string
	applyBrand   string
	applyYes     bool
)

func init() {
	applyCmd.Flags().StringVar(&applyConsole, "console", "", "console real name or display name (required)")
	applyCmd.Flags().StringVar(&applyBrand, "brand", "", "only match display names of this brand")
	applyCmd.Flags().BoolVarP(&applyYes, "yes", "y", false, "do not ask for confirmation")
	applyCmd.MarkFlagRequired("console")
	rootCmd.AddCommand(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Copy a console's files without the menus",
	Long:  "Cleans the target directory, copies the files of the named console and applies the language given by --lang or the settings file. Without a language the current marker is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		choice, ok := cat.Find(applyConsole, applyBrand)
		if !ok {
			if applyBrand != "" {
				return fmt.Errorf("console %q not found for brand %q", applyConsole, applyBrand)
			}
			return fmt.Errorf("console %q not found", applyConsole)
		}
		con := choice.Selected()

		brand := applyBrand
		if brand == "" {
			if brands := cat.BrandsFor(con); len(brands) > 0 {
				brand = brands[0]
			}
		}

		store := openHistory()
		if store != nil {
			defer store.Close()
		}
		wf, err := newWorkflow(cat, store)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !applyYes {
			p := ui.NewPrompter(cmd.Context(), cmd.InOrStdin(), out)
			p.Printf("Console selected: %s (%s)\n", ui.Title.Render(con.Label()), con.RealName)
			p.Printf("Target: %s\n", wf.TargetDir)
			ok, err := p.Confirm("Continue with copy?")
			if err != nil {
				return err
			}
			if !ok {
				return ui.ErrCancelled
			}
		}

		res, err := wf.Apply(selector.Selection{Brand: brand, Console: con}, out)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		selector.RenderSummary(out, res)
		return nil
	},
}
