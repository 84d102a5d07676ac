package main

import (
	"fmt"

	"fittrack/internal/database"
	"fittrack/internal/seed"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var (
		demoUser bool
		password string
		days     int
		randSeed int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the exercise and food catalog",
		Long: `Seed inserts the built-in exercises and foods. Running it again only adds
entries that are missing. With --demo-user it also creates a demo account
with a program, a nutrition goal and some meal and measurement history.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)

			out := cmd.OutOrStdout()
			ok := color.New(color.FgGreen)

			res, err := seed.Catalog(cmd.Context(), db)
			if err != nil {
				return err
			}
			ok.Fprintf(out, "✓ Catalog seeded: %d exercises, %d foods added\n", res.Exercises, res.Foods)

			if !demoUser {
				return nil
			}
			account, err := seed.DemoUser(cmd.Context(), db, seed.DemoOptions{
				Seed:     randSeed,
				Password: password,
				Days:     days,
			})
			if err != nil {
				return fmt.Errorf("failed to create demo user: %w", err)
			}
			ok.Fprintln(out, "✓ Demo user created")
			fmt.Fprintf(out, "  username: %s\n  email:    %s\n  password: %s\n", account.Username, account.Email, account.Password)
			return nil
		},
	}

	cmd.Flags().BoolVar(&demoUser, "demo-user", false, "also create a demo account with sample history")
	cmd.Flags().StringVar(&password, "password", "", "password for the demo account (default fittrack123)")
	cmd.Flags().IntVar(&days, "days", 14, "days of history for the demo account")
	cmd.Flags().Int64Var(&randSeed, "seed", 0, "random seed for reproducible demo data")
	return cmd
}
