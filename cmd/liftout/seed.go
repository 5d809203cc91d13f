package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ezhulati/liftout-platform-sub008/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "写入演示账号、团队与招聘机会",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		a, err := newApplication(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer a.close()

		res, err := seed.Run(cmd.Context(), a.repo, a.svc, logger)
		if err != nil {
			return err
		}
		if res == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "demo data already present")
			return nil
		}
		logger.Info("演示账号",
			zap.String("admin", seed.AdminEmail),
			zap.String("company", seed.CompanyEmail),
			zap.String("individual", seed.IndividualEmail),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d teams, %d opportunities (password: %s)\n",
			len(res.TeamIDs), len(res.OpportunityIDs), seed.DemoPassword)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
