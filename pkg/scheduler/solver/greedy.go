// Package solver 提供排班求解器
package solver

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/zhiban/zhiban/pkg/errors"
	"github.com/zhiban/zhiban/pkg/logger"
	"github.com/zhiban/zhiban/pkg/model"
	"github.com/zhiban/zhiban/pkg/rules"
	"github.com/zhiban/zhiban/pkg/scheduler/eligibility"
	"github.com/zhiban/zhiban/pkg/scheduler/scoring"
)

// scoreEpsilon 浮点得分的相等判定阈值
const scoreEpsilon = 1e-9

// ScoreFunc 可插拔的评分函数：对 (人员, 班次, 当前排班进度)
// 返回可比较的数值，越高越优先
type ScoreFunc func(p *model.Person, s *model.Shift, sched *model.Schedule) float64

// Solver 求解器接口
type Solver interface {
	// Solve 生成排班方案
	Solve(ctx context.Context, people []*model.Person, shifts []*model.Shift) (*Result, error)

	// Name 返回求解器名称
	Name() string
}

// Result 求解结果
type Result struct {
	Schedule   *model.Schedule `json:"schedule"`
	Statistics *Statistics     `json:"statistics"`
	Duration   time.Duration   `json:"duration"`
}

// Statistics 排班统计
type Statistics struct {
	TotalSlots        int     `json:"total_slots"`
	FilledSlots       int     `json:"filled_slots"`
	CoverageRate      float64 `json:"coverage_rate"` // 0-100
	TotalAssignments  int     `json:"total_assignments"`
	TotalHours        float64 `json:"total_hours"`
	AvgHoursPerPerson float64 `json:"avg_hours_per_person"`
}

// GreedySolver 贪心求解器：按 (日期, 开始时间) 升序单遍扫描班次，
// 逐槽位提交当前得分最高的合格候选人。
//
// 单遍无回溯：已提交的分配不会因后续班次欠覆盖而被撤销，
// 相同输入总是产生相同结果。
type GreedySolver struct {
	reg    *rules.Registry
	eval   *eligibility.Evaluator
	score  ScoreFunc
	logger *logger.SchedulerLogger
}

// NewGreedySolver 创建贪心求解器，默认使用 scoring 包的加权评分
func NewGreedySolver(reg *rules.Registry) *GreedySolver {
	return &GreedySolver{
		reg:    reg,
		eval:   eligibility.NewEvaluator(reg),
		score:  scoring.NewScorer(reg).Score,
		logger: logger.NewSchedulerLogger(),
	}
}

// Name 返回求解器名称
func (s *GreedySolver) Name() string {
	return "GreedySolver"
}

// SetScoreFunc 替换评分函数（软约束组合公式可配置）
func (s *GreedySolver) SetScoreFunc(f ScoreFunc) {
	if f != nil {
		s.score = f
	}
}

// Solve 生成排班。配置或名册问题返回致命错误；
// 欠覆盖作为违规记录在结果中，不中止生成。
func (s *GreedySolver) Solve(ctx context.Context, people []*model.Person, shifts []*model.Shift) (*Result, error) {
	startTime := time.Now()

	// 过滤在职人员，保持输入顺序（平分时的最终决胜依据）
	roster := make([]*model.Person, 0, len(people))
	for _, p := range people {
		if !p.IsActive() {
			continue
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		roster = append(roster, p)
	}
	if len(roster) == 0 {
		return nil, errors.EmptyRoster(fmt.Sprintf("输入 %d 人，无在职人员", len(people)))
	}

	// 按 (日期, 开始时间, 类型) 升序排序，保证结果可复现
	ordered := make([]*model.Shift, len(shifts))
	copy(ordered, shifts)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Date != ordered[j].Date {
			return ordered[i].Date < ordered[j].Date
		}
		if !ordered[i].StartTime.Equal(ordered[j].StartTime) {
			return ordered[i].StartTime.Before(ordered[j].StartTime)
		}
		return ordered[i].TypeCode < ordered[j].TypeCode
	})

	sched := model.NewSchedule(periodBounds(ordered))
	s.logger.StartSchedule(len(roster), len(ordered), sched.StartDate, sched.EndDate)

	totalSlots := 0
	filledSlots := 0

	for _, shift := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.CodeTimeout, "排班生成被取消")
		}

		st, _ := s.reg.ShiftType(shift.TypeCode)

		for slot := 0; slot < shift.Required; slot++ {
			totalSlots++

			best := s.pickBest(roster, shift, sched)
			if best == nil {
				sched.AddViolation(model.Violation{
					Kind:     model.ViolationUnderCoverage,
					ShiftID:  shift.ID,
					TypeCode: shift.TypeCode,
					Date:     shift.Date,
					Slot:     slot,
					Required: shift.Required,
					Filled:   sched.ShiftFilled(shift.ID),
					Message:  fmt.Sprintf("班次 %s (%s) 第 %d 槽位无合格候选人", shift.TypeCode, shift.Date, slot),
				})
				s.logger.SlotUnfilled(shift.ID.String(), shift.Date, slot)
				continue
			}

			sched.Add(&model.Assignment{
				ID:        uuid.New(),
				PersonID:  best.ID,
				ShiftID:   shift.ID,
				TypeCode:  shift.TypeCode,
				Date:      shift.Date,
				StartTime: shift.StartTime,
				EndTime:   shift.EndTime,
				Slot:      slot,
			}, st.IsNight(), st.Desirability)
			filledSlots++
		}
	}

	sched.Freeze()

	result := &Result{
		Schedule:   sched,
		Statistics: s.buildStatistics(sched, roster, totalSlots, filledSlots),
		Duration:   time.Since(startTime),
	}

	s.logger.ScheduleComplete(
		len(sched.Assignments),
		totalSlots-filledSlots,
		result.Statistics.CoverageRate,
		result.Duration,
	)

	return result, nil
}

// pickBest 在合格候选人中取得分最高者。
// 同分时优先累计班次最少的人，仍同分取名册输入顺序靠前者。
func (s *GreedySolver) pickBest(roster []*model.Person, shift *model.Shift, sched *model.Schedule) *model.Person {
	var best *model.Person
	var bestScore float64
	var bestCount int

	for _, p := range roster {
		ok, _ := s.eval.Eligible(p, shift, sched)
		if !ok {
			continue
		}

		score := s.score(p, shift, sched)
		count := sched.PersonShiftCount(p.ID)

		if best == nil {
			best, bestScore, bestCount = p, score, count
			continue
		}

		switch {
		case score > bestScore+scoreEpsilon:
			best, bestScore, bestCount = p, score, count
		case math.Abs(score-bestScore) <= scoreEpsilon && count < bestCount:
			best, bestScore, bestCount = p, score, count
		}
	}

	return best
}

// buildStatistics 汇总求解统计
func (s *GreedySolver) buildStatistics(sched *model.Schedule, roster []*model.Person, totalSlots, filledSlots int) *Statistics {
	stats := &Statistics{
		TotalSlots:       totalSlots,
		FilledSlots:      filledSlots,
		TotalAssignments: len(sched.Assignments),
	}
	if totalSlots > 0 {
		stats.CoverageRate = float64(filledSlots) / float64(totalSlots) * 100
	}

	active := 0
	for _, p := range roster {
		hours := sched.PersonTotalHours(p.ID)
		stats.TotalHours += hours
		if hours > 0 {
			active++
		}
	}
	if active > 0 {
		stats.AvgHoursPerPerson = stats.TotalHours / float64(active)
	}

	return stats
}

// periodBounds 取排序后班次集合的日期范围
func periodBounds(shifts []*model.Shift) (string, string) {
	if len(shifts) == 0 {
		return "", ""
	}
	return shifts[0].Date, shifts[len(shifts)-1].Date
}
