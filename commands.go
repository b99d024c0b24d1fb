package main

import (
	"fmt"
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/router"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default categories and the budget for the current month",
		Long: `Creates the default categories if there are no categories yet and the
budget for all spending of the current month with the configured default
limit if there is none.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := connect()
			if err != nil {
				return err
			}
			defer models.Close()

			categories, err := models.SeedDefaultCategories(models.DB)
			if err != nil {
				return err
			}
			log.Info().Int("created", len(categories)).Msg("Default categories")

			budget, created, err := models.EnsureBudget(models.DB, types.MonthOf(time.Now()), cfg.DefaultLimit)
			if err != nil {
				return err
			}
			log.Info().Str("month", budget.Month.String()).Str("limit", budget.Limit.String()).Bool("created", created).Msg("Budget")

			return nil
		},
	}
}

func subscriptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "Manage subscriptions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "bill-due",
		Short: "Record an expense for every due billing cycle of all active subscriptions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := connect()
			if err != nil {
				return err
			}
			defer models.Close()

			billed, err := models.BillDue(models.DB, time.Now())
			for _, t := range billed {
				log.Info().Str("merchant", t.Merchant).Time("date", t.Date).Str("amount", t.Amount.String()).Msg("Billed")
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d billing(s) recorded\n", len(billed))
			return nil
		},
	})

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",

		// The version does not need any configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), router.Version())
		},
	}
}
