// Package model 定义排班引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// personState 人员累计状态（由分配器在单次生成过程中增量维护）
type personState struct {
	assignments     []*Assignment
	shiftCount      int
	totalHours      float64
	hoursByWeek     map[string]float64
	nightsByWeek    map[string]int
	workedDates     map[string]bool
	desirabilitySum float64
	lastEnd         time.Time
	hasLastEnd      bool
}

// Schedule 排班计划：有序的分配集合及派生的人员累计状态。
// 仅在一次生成过程中由分配器变更，冻结后只读。
type Schedule struct {
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
	Assignments []*Assignment `json:"assignments"`
	Violations  []Violation   `json:"violations"`

	byPerson map[uuid.UUID]*personState
	byShift  map[uuid.UUID]int
	frozen   bool
}

// NewSchedule 创建空排班计划
func NewSchedule(startDate, endDate string) *Schedule {
	return &Schedule{
		StartDate:   startDate,
		EndDate:     endDate,
		Assignments: make([]*Assignment, 0),
		Violations:  make([]Violation, 0),
		byPerson:    make(map[uuid.UUID]*personState),
		byShift:     make(map[uuid.UUID]int),
	}
}

// AddViolation 追加一条违规记录（冻结后无效）
func (s *Schedule) AddViolation(v Violation) {
	if s.frozen {
		return
	}
	s.Violations = append(s.Violations, v)
}

// Freeze 冻结排班计划，之后不再接受变更
func (s *Schedule) Freeze() {
	s.frozen = true
}

// Frozen 检查排班计划是否已冻结
func (s *Schedule) Frozen() bool {
	return s.frozen
}

// Add 追加一个分配并更新该人员的累计状态。
// night 与 desirability 来自班次类型，由调用方解析后传入。
// 冻结后的计划不可变，此时调用无效果。
func (s *Schedule) Add(a *Assignment, night bool, desirability float64) {
	if s.frozen {
		return
	}

	s.Assignments = append(s.Assignments, a)
	s.byShift[a.ShiftID]++

	st := s.byPerson[a.PersonID]
	if st == nil {
		st = &personState{
			hoursByWeek:  make(map[string]float64),
			nightsByWeek: make(map[string]int),
			workedDates:  make(map[string]bool),
		}
		s.byPerson[a.PersonID] = st
	}

	st.assignments = append(st.assignments, a)
	st.shiftCount++
	hours := a.WorkingHours()
	st.totalHours += hours

	week := WeekStart(a.Date)
	st.hoursByWeek[week] += hours
	if night {
		st.nightsByWeek[week]++
	}

	st.workedDates[a.Date] = true
	st.desirabilitySum += desirability

	if !st.hasLastEnd || a.EndTime.After(st.lastEnd) {
		st.lastEnd = a.EndTime
		st.hasLastEnd = true
	}
}

// PersonAssignments 获取人员的所有分配
func (s *Schedule) PersonAssignments(id uuid.UUID) []*Assignment {
	if st := s.byPerson[id]; st != nil {
		return st.assignments
	}
	return nil
}

// PersonShiftCount 获取人员累计班次数
func (s *Schedule) PersonShiftCount(id uuid.UUID) int {
	if st := s.byPerson[id]; st != nil {
		return st.shiftCount
	}
	return 0
}

// PersonTotalHours 获取人员累计工时
func (s *Schedule) PersonTotalHours(id uuid.UUID) float64 {
	if st := s.byPerson[id]; st != nil {
		return st.totalHours
	}
	return 0
}

// PersonHoursInWeek 获取人员在某周（周一起始）的累计工时
func (s *Schedule) PersonHoursInWeek(id uuid.UUID, weekStart string) float64 {
	if st := s.byPerson[id]; st != nil {
		return st.hoursByWeek[weekStart]
	}
	return 0
}

// PersonNightsInWeek 获取人员在某周的夜班数
func (s *Schedule) PersonNightsInWeek(id uuid.UUID, weekStart string) int {
	if st := s.byPerson[id]; st != nil {
		return st.nightsByWeek[weekStart]
	}
	return 0
}

// PersonDesirabilitySum 获取人员累计的班次受欢迎度之和
func (s *Schedule) PersonDesirabilitySum(id uuid.UUID) float64 {
	if st := s.byPerson[id]; st != nil {
		return st.desirabilitySum
	}
	return 0
}

// PersonLastEnd 获取人员最近一次分配的结束时间
func (s *Schedule) PersonLastEnd(id uuid.UUID) (time.Time, bool) {
	if st := s.byPerson[id]; st != nil && st.hasLastEnd {
		return st.lastEnd, true
	}
	return time.Time{}, false
}

// HasOverlap 检查人员是否已有与给定时间窗口重叠的分配
func (s *Schedule) HasOverlap(id uuid.UUID, window TimeRange) bool {
	st := s.byPerson[id]
	if st == nil {
		return false
	}
	for _, a := range st.assignments {
		if a.Window().Overlaps(window) {
			return true
		}
	}
	return false
}

// ConsecutiveRun 计算若在目标日期排班，人员前后相邻日期的连续值班天数
// （不含目标日期本身，调用方 +1 得到总连续天数）
func (s *Schedule) ConsecutiveRun(id uuid.UUID, targetDate string) int {
	st := s.byPerson[id]
	if st == nil {
		return 0
	}

	countBefore := 0
	date := PreviousDate(targetDate)
	for st.workedDates[date] {
		countBefore++
		date = PreviousDate(date)
		if countBefore > 60 { // 防止异常数据导致死循环
			break
		}
	}

	countAfter := 0
	date = NextDate(targetDate)
	for st.workedDates[date] {
		countAfter++
		date = NextDate(date)
		if countAfter > 60 {
			break
		}
	}

	return countBefore + countAfter
}

// ShiftFilled 获取某班次已填充的槽位数
func (s *Schedule) ShiftFilled(shiftID uuid.UUID) int {
	return s.byShift[shiftID]
}
