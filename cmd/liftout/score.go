package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezhulati/liftout-platform-sub008/internal/matching"
	"github.com/ezhulati/liftout-platform-sub008/internal/service"
)

var (
	scoreTeamFile string
	scoreOppFile  string
	scoreFor      string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "离线计算团队与机会的匹配分",
	Long: `读取团队与机会的 JSON 描述，使用配置中的权重与阈值计算匹配分。
--for team（默认）按“为机会挑团队”的权重评分，--for opportunity 按“为团队挑机会”的权重评分。`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		teamScorer, oppScorer, err := service.NewScorers(&cfg.Matching)
		if err != nil {
			return err
		}

		var scorer *matching.Scorer
		switch scoreFor {
		case "team":
			scorer = teamScorer
		case "opportunity":
			scorer = oppScorer
		default:
			return fmt.Errorf("--for 只能是 team 或 opportunity，实际 %q", scoreFor)
		}

		var team matching.TeamProfile
		if err := readJSONFile(scoreTeamFile, &team); err != nil {
			return err
		}
		var opp matching.OpportunityProfile
		if err := readJSONFile(scoreOppFile, &opp); err != nil {
			return err
		}

		return writeScore(cmd.OutOrStdout(), scorer.Score(team, opp))
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreTeamFile, "team", "", "团队 JSON 文件（字段同 TeamProfile）")
	scoreCmd.Flags().StringVar(&scoreOppFile, "opportunity", "", "机会 JSON 文件（字段同 OpportunityProfile）")
	scoreCmd.Flags().StringVar(&scoreFor, "for", "team", "评分视角：team 或 opportunity")
	_ = scoreCmd.MarkFlagRequired("team")
	_ = scoreCmd.MarkFlagRequired("opportunity")
	rootCmd.AddCommand(scoreCmd)
}

func readJSONFile(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("打开 %s 失败: %w", path, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("解析 %s 失败: %w", path, err)
	}
	return nil
}

func writeScore(w io.Writer, score matching.MatchScore) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(score)
}
