package commands

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"scrapedesk/internal/core/domain"
)

var (
	scrapeCategory string
	scrapePages    string
)

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeCategory, "category", "c", "", "Category jump name, slug or name.")
	scrapeCmd.Flags().StringVarP(&scrapePages, "pages", "P", "", "Pages to scrape (1-5, default 1).")
	_ = scrapeCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape --category <id> [--pages <n>]",
	Short: "Runs a single scrape job and prints the results.",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _, err := newSession(cmd)
		if err != nil {
			return err
		}
		session.Fields.Pages = scrapePages

		ctx := cmd.Context()
		if err := session.LoadCategories(ctx); err != nil {
			return err
		}
		result, err := session.SubmitCategory(ctx, scrapeCategory)
		if err != nil {
			return err
		}
		printJobSummary(cmd, result)
		return nil
	},
}

func printJobSummary(cmd *cobra.Command, result *domain.JobResult) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Job Summary")
	t.AppendRow(table.Row{"Job ID", result.Job.ID})
	t.AppendRow(table.Row{"Category", result.Job.Label})
	t.AppendRow(table.Row{"Pages", result.Job.Pages})
	if result.Result != nil {
		t.AppendRow(table.Row{"Videos", len(result.Result.Videos)})
		t.AppendRow(table.Row{"Channel", result.Result.Category.Channel})
	}
	if result.ExportPath != "" {
		t.AppendRow(table.Row{"Exported", result.ExportPath})
	}
	t.AppendRow(table.Row{"Completed At", result.CompletedAt.Format(time.RFC3339)})
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
}
