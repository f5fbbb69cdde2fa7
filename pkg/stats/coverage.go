// Package stats 提供排班统计分析功能
package stats

import (
	"github.com/zhiban/zhiban/pkg/model"
)

// CoverageMetrics 覆盖率指标
type CoverageMetrics struct {
	TotalSlots      int     `json:"total_slots"`      // 总需求槽位数
	FilledSlots     int     `json:"filled_slots"`     // 已填充槽位数
	OverallCoverage float64 `json:"overall_coverage"` // 整体覆盖率 (%)

	// 按日期统计
	DailyCoverage map[string]DayCoverage `json:"daily_coverage"`

	// 按班次类型统计
	TypeCoverage map[string]float64 `json:"type_coverage"`

	// 欠员班次
	UnfilledShifts []UnfilledShift `json:"unfilled_shifts"`
}

// DayCoverage 每日覆盖情况
type DayCoverage struct {
	Date         string  `json:"date"`
	TotalSlots   int     `json:"total_slots"`
	Filled       int     `json:"filled"`
	CoverageRate float64 `json:"coverage_rate"`
	TotalHours   float64 `json:"total_hours"`
}

// UnfilledShift 欠员班次
type UnfilledShift struct {
	ShiftID  string `json:"shift_id"`
	TypeCode string `json:"type_code"`
	Date     string `json:"date"`
	Required int    `json:"required"`
	Filled   int    `json:"filled"`
	Shortage int    `json:"shortage"`
}

// CoverageAnalyzer 覆盖率分析器
type CoverageAnalyzer struct{}

// NewCoverageAnalyzer 创建覆盖率分析器
func NewCoverageAnalyzer() *CoverageAnalyzer {
	return &CoverageAnalyzer{}
}

// Analyze 按槽位分析覆盖率。只读，不变更排班。
func (c *CoverageAnalyzer) Analyze(sched *model.Schedule, shifts []*model.Shift) *CoverageMetrics {
	metrics := &CoverageMetrics{
		DailyCoverage: make(map[string]DayCoverage),
		TypeCoverage:  make(map[string]float64),
	}
	if len(shifts) == 0 {
		metrics.OverallCoverage = 100
		return metrics
	}

	dailyStats := make(map[string]*DayCoverage)
	typeTotals := make(map[string]int)
	typeFilled := make(map[string]int)

	for _, shift := range shifts {
		filled := sched.ShiftFilled(shift.ID)
		if filled > shift.Required {
			filled = shift.Required
		}

		metrics.TotalSlots += shift.Required
		metrics.FilledSlots += filled

		day, exists := dailyStats[shift.Date]
		if !exists {
			day = &DayCoverage{Date: shift.Date}
			dailyStats[shift.Date] = day
		}
		day.TotalSlots += shift.Required
		day.Filled += filled
		day.TotalHours += float64(filled) * shift.DurationHours

		typeTotals[shift.TypeCode] += shift.Required
		typeFilled[shift.TypeCode] += filled

		if filled < shift.Required {
			metrics.UnfilledShifts = append(metrics.UnfilledShifts, UnfilledShift{
				ShiftID:  shift.ID.String(),
				TypeCode: shift.TypeCode,
				Date:     shift.Date,
				Required: shift.Required,
				Filled:   filled,
				Shortage: shift.Required - filled,
			})
		}
	}

	if metrics.TotalSlots > 0 {
		metrics.OverallCoverage = float64(metrics.FilledSlots) / float64(metrics.TotalSlots) * 100
	}

	for date, day := range dailyStats {
		if day.TotalSlots > 0 {
			day.CoverageRate = float64(day.Filled) / float64(day.TotalSlots) * 100
		}
		metrics.DailyCoverage[date] = *day
	}

	for code, total := range typeTotals {
		if total > 0 {
			metrics.TypeCoverage[code] = float64(typeFilled[code]) / float64(total) * 100
		}
	}

	return metrics
}
