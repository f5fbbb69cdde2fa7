// Package eligibility 提供硬约束资格评估器
package eligibility

import (
	"fmt"

	"github.com/zhiban/zhiban/pkg/model"
	"github.com/zhiban/zhiban/pkg/rules"
)

// Evaluator 资格评估器：判断在当前排班进度下，
// 将某人分配到某班次是否违反任一硬约束。
// 无副作用，可重复调用，不变更传入的排班计划。
type Evaluator struct {
	reg *rules.Registry
}

// NewEvaluator 创建资格评估器
func NewEvaluator(reg *rules.Registry) *Evaluator {
	return &Evaluator{reg: reg}
}

// Eligible 评估全部硬约束，返回是否合格及不合格原因
func (e *Evaluator) Eligible(p *model.Person, s *model.Shift, sched *model.Schedule) (bool, string) {
	// 1. 休假日期
	if p.IsOnLeave(s.Date) {
		return false, fmt.Sprintf("%s 休假", s.Date)
	}

	// 2. 与既有分配的时间窗口重叠
	if sched.HasOverlap(p.ID, s.Window()) {
		return false, "与既有分配时间重叠"
	}

	// 3. 每周工时上限（班次工时计入其日期所在周）
	week := model.WeekStart(s.Date)
	maxHours := e.reg.PersonMaxWeeklyHours(p)
	if sched.PersonHoursInWeek(p.ID, week)+s.DurationHours > maxHours {
		return false, fmt.Sprintf("超过每周工时上限 (%.0f 小时)", maxHours)
	}

	// 4. 最大连续值班天数（相邻日历日无空档即为连续）
	maxRun := e.reg.PersonMaxConsecutive(p)
	if sched.ConsecutiveRun(p.ID, s.Date)+1 > maxRun {
		return false, fmt.Sprintf("超过最大连续值班天数 (%d 天)", maxRun)
	}

	// 5. 与最近一次分配之间的休息间隔（无历史分配时跳过）
	if lastEnd, ok := sched.PersonLastEnd(p.ID); ok {
		minRest := e.reg.PersonMinRest(p)
		rest := s.StartTime.Sub(lastEnd).Hours()
		if rest >= 0 && rest < minRest {
			return false, fmt.Sprintf("休息不足 (需要 %.0f 小时)", minRest)
		}
	}

	// 6. 夜班类型的每周夜班数上限
	if st, ok := e.reg.ShiftType(s.TypeCode); ok && st.IsNight() {
		if sched.PersonNightsInWeek(p.ID, week)+1 > e.reg.Hard.MaxNightShiftsPerWeek {
			return false, fmt.Sprintf("超过每周夜班上限 (%d 班)", e.reg.Hard.MaxNightShiftsPerWeek)
		}
	}

	// 7. 班次要求的专科标签必须全部具备
	for _, tag := range s.RequiredSpecialties {
		if !p.HasSpecialty(tag) {
			return false, fmt.Sprintf("缺少专科标签: %s", tag)
		}
	}

	return true, ""
}
