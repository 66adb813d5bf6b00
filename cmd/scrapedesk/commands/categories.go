package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Loads and prints the category list.",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _, err := newSession(cmd)
		if err != nil {
			return err
		}
		return session.LoadCategories(cmd.Context())
	},
}
