// ZhiBan 值班排班引擎
// 命令行入口

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/zhiban/zhiban/internal/config"
	"github.com/zhiban/zhiban/internal/database"
	"github.com/zhiban/zhiban/internal/repository"
	"github.com/zhiban/zhiban/pkg/logger"
	"github.com/zhiban/zhiban/pkg/rules"
	"github.com/zhiban/zhiban/pkg/scheduler/solver"
	"github.com/zhiban/zhiban/pkg/timetable"
	"github.com/zhiban/zhiban/pkg/validator"
)

// 构建信息（通过 ldflags 注入）
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Format: "console",
	})

	rootCmd := &cobra.Command{
		Use:     "rota",
		Short:   "ZhiBan 值班排班引擎",
		Long:    "根据规则配置与人员花名册生成值班表，输出覆盖率与公平性报告。",
		Version: fmt.Sprintf("%s (build %s, commit %s)", Version, BuildTime, GitCommit),
	}

	rootCmd.AddCommand(generateCmd(cfg))
	rootCmd.AddCommand(rulesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// generateCmd 生成值班表
func generateCmd(cfg *config.Config) *cobra.Command {
	var (
		rulesPath  string
		rosterPath string
		fromDB     bool
		startDate  string
		weeks      int
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "生成值班表并输出校验报告",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := os.ReadFile(rulesPath)
			if err != nil {
				return fmt.Errorf("读取规则配置失败: %w", err)
			}

			reg, err := rules.Load(doc)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Scheduler.DefaultTimeout)
			defer cancel()

			var source repository.PersonLister
			if fromDB {
				db, err := database.New(&cfg.Database)
				if err != nil {
					return err
				}
				defer db.Close()
				source = repository.NewPersonRepository(db)
			} else {
				roster, err := repository.LoadRosterFile(rosterPath)
				if err != nil {
					return err
				}
				source = roster
			}

			people, err := source.ListActive(ctx)
			if err != nil {
				return err
			}

			if weeks <= 0 {
				weeks = cfg.Scheduler.DefaultWeeks
			}

			shifts, err := timetable.Expand(reg, startDate, weeks)
			if err != nil {
				return err
			}

			result, err := solver.NewGreedySolver(reg).Solve(ctx, people, shifts)
			if err != nil {
				return err
			}

			report := validator.New(reg).Validate(result.Schedule, shifts, people)

			out := struct {
				GeneratedAt time.Time          `json:"generated_at"`
				Duration    string             `json:"duration"`
				Statistics  *solver.Statistics `json:"statistics"`
				Report      *validator.Report  `json:"report"`
			}{
				GeneratedAt: time.Now(),
				Duration:    result.Duration.String(),
				Statistics:  result.Statistics,
				Report:      report,
			}

			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("序列化报告失败: %w", err)
			}

			if outPath == "" || outPath == "-" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("写入报告失败: %w", err)
			}

			fmt.Printf("报告已写入 %s（覆盖率 %.1f%%，违规 %d 条）\n",
				outPath, report.CoverageRate, len(report.Violations))
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "rules.yaml", "规则配置文件（YAML）")
	cmd.Flags().StringVar(&rosterPath, "roster", "roster.json", "人员花名册文件（JSON）")
	cmd.Flags().BoolVar(&fromDB, "from-db", false, "从PostgreSQL读取花名册而非文件")
	cmd.Flags().StringVar(&startDate, "start", "", "排班开始日期（YYYY-MM-DD，必填）")
	cmd.Flags().IntVar(&weeks, "weeks", 0, "排班周数，默认取配置值")
	cmd.Flags().StringVar(&outPath, "out", "-", "报告输出路径，- 为标准输出")
	cmd.MarkFlagRequired("start")

	return cmd
}

// rulesCmd 列出约束目录
func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "列出支持的硬约束与软约束",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(rules.Library(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}
