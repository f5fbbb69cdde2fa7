// Package stats 提供排班统计分析功能
package stats

import (
	"math"
	"sort"

	"github.com/zhiban/zhiban/pkg/model"
)

// FairnessMetrics 公平性指标
type FairnessMetrics struct {
	// 工时公平性
	WorkloadGini   float64 `json:"workload_gini"` // 工时基尼系数 (0=完全公平, 1=完全不公平)
	WorkloadStdDev float64 `json:"workload_std_dev"`
	AvgHours       float64 `json:"avg_hours"`
	MaxHours       float64 `json:"max_hours"`
	MinHours       float64 `json:"min_hours"`
	HoursRange     float64 `json:"hours_range"`

	// 班次数公平性
	AvgShifts float64 `json:"avg_shifts"`
	MaxShifts int     `json:"max_shifts"`
	MinShifts int     `json:"min_shifts"`

	// 夜班/周末班分配公平性
	NightShiftGini   float64 `json:"night_shift_gini"`
	WeekendShiftGini float64 `json:"weekend_shift_gini"`

	// 人员级别统计
	PersonStats []PersonStat `json:"person_stats"`

	// 综合评分 (0-100)
	OverallFairnessScore float64 `json:"overall_fairness_score"`
}

// PersonStat 人员统计
type PersonStat struct {
	PersonID      string  `json:"person_id"`
	PersonName    string  `json:"person_name"`
	TotalHours    float64 `json:"total_hours"`
	ShiftCount    int     `json:"shift_count"`
	NightShifts   int     `json:"night_shifts"`
	WeekendShifts int     `json:"weekend_shifts"`
	Deviation     float64 `json:"deviation"` // 与平均工时的偏差百分比
}

// FairnessAnalyzer 公平性分析器
type FairnessAnalyzer struct {
	types map[string]model.ShiftType
}

// NewFairnessAnalyzer 创建公平性分析器。
// types 用于按班次类型识别夜班。
func NewFairnessAnalyzer(types map[string]model.ShiftType) *FairnessAnalyzer {
	return &FairnessAnalyzer{types: types}
}

// Analyze 分析冻结排班计划的公平性。只读，不变更排班。
func (f *FairnessAnalyzer) Analyze(sched *model.Schedule, people []*model.Person) *FairnessMetrics {
	if len(people) == 0 || len(sched.Assignments) == 0 {
		return &FairnessMetrics{OverallFairnessScore: 100}
	}

	personStats := f.calculatePersonStats(sched, people)

	hours := make([]float64, len(personStats))
	shiftCounts := make([]float64, len(personStats))
	nights := make([]float64, len(personStats))
	weekends := make([]float64, len(personStats))
	for i, st := range personStats {
		hours[i] = st.TotalHours
		shiftCounts[i] = float64(st.ShiftCount)
		nights[i] = float64(st.NightShifts)
		weekends[i] = float64(st.WeekendShifts)
	}

	avgHours := mean(hours)
	stdDev := math.Sqrt(variance(hours, avgHours))
	maxHours, minHours := extremes(hours)
	maxShifts, minShifts := extremes(shiftCounts)

	for i := range personStats {
		if avgHours > 0 {
			personStats[i].Deviation = (personStats[i].TotalHours - avgHours) / avgHours * 100
		}
	}

	workloadGini := gini(hours)
	nightGini := gini(nights)
	weekendGini := gini(weekends)

	return &FairnessMetrics{
		WorkloadGini:         workloadGini,
		WorkloadStdDev:       stdDev,
		AvgHours:             avgHours,
		MaxHours:             maxHours,
		MinHours:             minHours,
		HoursRange:           maxHours - minHours,
		AvgShifts:            mean(shiftCounts),
		MaxShifts:            int(maxShifts),
		MinShifts:            int(minShifts),
		NightShiftGini:       nightGini,
		WeekendShiftGini:     weekendGini,
		PersonStats:          personStats,
		OverallFairnessScore: overallScore(workloadGini, nightGini, weekendGini, stdDev, avgHours),
	}
}

// calculatePersonStats 计算人员统计数据。
// 名册中无任何分配的人员也计入，保证极差/基尼反映真实分布。
func (f *FairnessAnalyzer) calculatePersonStats(sched *model.Schedule, people []*model.Person) []PersonStat {
	result := make([]PersonStat, 0, len(people))

	for _, p := range people {
		stat := PersonStat{
			PersonID:   p.ID.String(),
			PersonName: p.Name,
			TotalHours: sched.PersonTotalHours(p.ID),
			ShiftCount: sched.PersonShiftCount(p.ID),
		}

		for _, a := range sched.PersonAssignments(p.ID) {
			if st, ok := f.types[a.TypeCode]; ok && st.IsNight() {
				stat.NightShifts++
			}
			if model.IsWeekend(a.Date) {
				stat.WeekendShifts++
			}
		}

		result = append(result, stat)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].TotalHours > result[j].TotalHours
	})

	return result
}

// overallScore 计算综合公平性评分
func overallScore(workloadGini, nightGini, weekendGini, stdDev, avgHours float64) float64 {
	const (
		workloadWeight = 0.4
		nightWeight    = 0.25
		weekendWeight  = 0.25
		stdDevWeight   = 0.1
	)

	// 基尼系数转换为分数 (0=100分, 1=0分)
	workloadScore := (1 - workloadGini) * 100
	nightScore := (1 - nightGini) * 100
	weekendScore := (1 - weekendGini) * 100

	// 变异系数越低分数越高
	cvScore := 100.0
	if avgHours > 0 {
		cv := stdDev / avgHours
		cvScore = math.Max(0, 100-cv*200)
	}

	score := workloadWeight*workloadScore +
		nightWeight*nightScore +
		weekendWeight*weekendScore +
		stdDevWeight*cvScore

	return math.Max(0, math.Min(100, score))
}

// 统计辅助函数

// mean 计算平均值
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance 计算方差
func variance(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sumSquares := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}
	return sumSquares / float64(len(values))
}

// extremes 计算极值
func extremes(values []float64) (max, min float64) {
	if len(values) == 0 {
		return 0, 0
	}
	max, min = values[0], values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	return
}

// gini 计算基尼系数
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	if sum == 0 {
		return 0
	}

	g := 0.0
	for i, v := range sorted {
		g += (2*float64(i+1) - float64(n) - 1) * v
	}

	g = g / (float64(n) * sum)
	return math.Max(0, math.Min(1, g))
}
