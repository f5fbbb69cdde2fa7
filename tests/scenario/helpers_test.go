// Package scenario 提供场景测试
package scenario

import (
	"fmt"
	"testing"

	"github.com/zhiban/zhiban/pkg/model"
	"github.com/zhiban/zhiban/pkg/rules"
	"github.com/zhiban/zhiban/pkg/timetable"
)

// wardRulesDoc 病区值班规则：工作日三班、周末两班。
// 每周需求合计156小时，周工时上限30使5人以下名册必然欠覆盖。
const wardRulesDoc = `
hard_constraints:
  max_consecutive_shifts: 5
  min_rest_hours: 11
  max_weekly_hours: 30
  max_night_shifts_per_week: 2
  min_staff_per_shift:
    day: 1
    evening: 1
    night: 1
soft_constraints:
  respect_leave_requests: {enabled: true, weight: 10}
  balance_weekend_shifts: {enabled: true, weight: 5}
  balance_night_shifts: {enabled: true, weight: 8}
  honor_shift_preferences: {enabled: true, weight: 3}
shift_types:
  day:
    name: 白班
    start_time: "08:00"
    end_time: "16:00"
    duration_hours: 8
    desirability: 1
  evening:
    name: 小夜班
    start_time: "16:00"
    end_time: "22:00"
    duration_hours: 6
    desirability: 0
  night:
    name: 大夜班
    start_time: "22:00"
    end_time: "08:00"
    duration_hours: 10
    desirability: -2
weekly_template:
  monday: [day, evening, night]
  tuesday: [day, evening, night]
  wednesday: [day, evening, night]
  thursday: [day, evening, night]
  friday: [day, evening, night]
  saturday: [day, night]
  sunday: [day, night]
`

// loadWardRules 加载病区值班规则
func loadWardRules(t *testing.T) *rules.Registry {
	t.Helper()
	reg, err := rules.Load([]byte(wardRulesDoc))
	if err != nil {
		t.Fatalf("加载规则配置失败: %v", err)
	}
	return reg
}

// createDoctors 创建同质的值班医师名册
func createDoctors(n int) []*model.Person {
	people := make([]*model.Person, 0, n)
	for i := 0; i < n; i++ {
		people = append(people, &model.Person{
			BaseModel:      model.NewBaseModel(),
			Name:           fmt.Sprintf("医师%02d", i+1),
			Code:           fmt.Sprintf("DOC%03d", i+1),
			Status:         "active",
			MaxWeeklyHours: 48,
		})
	}
	return people
}

// expandMonth 展开4周（76班）的病区班表
func expandMonth(t *testing.T, reg *rules.Registry) []*model.Shift {
	t.Helper()
	shifts, err := timetable.Expand(reg, "2026-03-02", 4)
	if err != nil {
		t.Fatalf("展开班次失败: %v", err)
	}
	return shifts
}
