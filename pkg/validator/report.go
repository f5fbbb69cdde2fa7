// Package validator 提供对已完成排班的校验与报告
package validator

import (
	"fmt"

	"github.com/zhiban/zhiban/pkg/model"
	"github.com/zhiban/zhiban/pkg/rules"
	"github.com/zhiban/zhiban/pkg/stats"
)

// Report 校验报告：覆盖率、公平性汇总与结构化违规列表。
// 供外层渲染或交给大模型解释，外层对排班计划只读。
type Report struct {
	TotalSlots   int     `json:"total_slots"`
	FilledSlots  int     `json:"filled_slots"`
	CoverageRate float64 `json:"coverage_rate"` // 0-100

	Coverage   *stats.CoverageMetrics `json:"coverage"`
	Fairness   *stats.FairnessMetrics `json:"fairness"`
	Violations []model.Violation      `json:"violations"`
}

// Validator 排班校验器
type Validator struct {
	reg      *rules.Registry
	coverage *stats.CoverageAnalyzer
	fairness *stats.FairnessAnalyzer
}

// New 创建校验器
func New(reg *rules.Registry) *Validator {
	return &Validator{
		reg:      reg,
		coverage: stats.NewCoverageAnalyzer(),
		fairness: stats.NewFairnessAnalyzer(reg.ShiftTypes),
	}
}

// Validate 对冻结的排班计划重新推导统计与违规列表。
// 纯读取，不依赖分配过程中的运行日志：欠覆盖违规按
// 班次的需求人数与实际填充数重新计算。
func (v *Validator) Validate(sched *model.Schedule, shifts []*model.Shift, people []*model.Person) *Report {
	coverage := v.coverage.Analyze(sched, shifts)
	fairness := v.fairness.Analyze(sched, people)

	report := &Report{
		TotalSlots:   coverage.TotalSlots,
		FilledSlots:  coverage.FilledSlots,
		CoverageRate: coverage.OverallCoverage,
		Coverage:     coverage,
		Fairness:     fairness,
		Violations:   v.deriveViolations(sched, shifts),
	}

	return report
}

// deriveViolations 从最终排班重新推导欠覆盖违规。
// 硬约束在分配时已由资格评估器保证，事后不会出现违反，
// 因此这里只产出欠覆盖类记录。
func (v *Validator) deriveViolations(sched *model.Schedule, shifts []*model.Shift) []model.Violation {
	violations := make([]model.Violation, 0)

	for _, shift := range shifts {
		filled := sched.ShiftFilled(shift.ID)
		for slot := filled; slot < shift.Required; slot++ {
			violations = append(violations, model.Violation{
				Kind:     model.ViolationUnderCoverage,
				ShiftID:  shift.ID,
				TypeCode: shift.TypeCode,
				Date:     shift.Date,
				Slot:     slot,
				Required: shift.Required,
				Filled:   filled,
				Message:  fmt.Sprintf("班次 %s (%s) 需要 %d 人，实际 %d 人", shift.TypeCode, shift.Date, shift.Required, filled),
			})
		}
	}

	return violations
}
