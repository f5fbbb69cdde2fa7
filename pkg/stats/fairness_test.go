package stats

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/zhiban/zhiban/pkg/model"
)

var shiftTypes = map[string]model.ShiftType{
	"day":   {Code: "day", StartTime: "08:00", EndTime: "16:00", Duration: 8, Desirability: 1},
	"night": {Code: "night", StartTime: "22:00", EndTime: "08:00", Duration: 10, Desirability: -2},
}

func addShift(sched *model.Schedule, personID uuid.UUID, date, typeCode string, startHour, hours int) {
	d, _ := time.Parse(model.DateLayout, date)
	start := d.Add(time.Duration(startHour) * time.Hour)
	sched.Add(&model.Assignment{
		ID:        uuid.New(),
		PersonID:  personID,
		ShiftID:   uuid.New(),
		TypeCode:  typeCode,
		Date:      date,
		StartTime: start,
		EndTime:   start.Add(time.Duration(hours) * time.Hour),
	}, typeCode == "night", 0)
}

func TestFairness_PerfectlyBalanced(t *testing.T) {
	sched := model.NewSchedule("2026-03-02", "2026-03-08")
	people := []*model.Person{
		{BaseModel: model.NewBaseModel(), Name: "甲"},
		{BaseModel: model.NewBaseModel(), Name: "乙"},
	}

	// 两人各一个白班
	addShift(sched, people[0].ID, "2026-03-02", "day", 8, 8)
	addShift(sched, people[1].ID, "2026-03-03", "day", 8, 8)

	m := NewFairnessAnalyzer(shiftTypes).Analyze(sched, people)

	if m.WorkloadGini != 0 {
		t.Errorf("完全均衡时基尼系数 = %.3f, expected 0", m.WorkloadGini)
	}
	if m.HoursRange != 0 {
		t.Errorf("完全均衡时极差 = %.1f, expected 0", m.HoursRange)
	}
	if m.AvgHours != 8 {
		t.Errorf("平均工时 = %.1f, expected 8", m.AvgHours)
	}
	if m.OverallFairnessScore != 100 {
		t.Errorf("综合评分 = %.1f, expected 100", m.OverallFairnessScore)
	}
}

func TestFairness_SkewedWorkload(t *testing.T) {
	sched := model.NewSchedule("2026-03-02", "2026-03-08")
	people := []*model.Person{
		{BaseModel: model.NewBaseModel(), Name: "甲"},
		{BaseModel: model.NewBaseModel(), Name: "乙"},
	}

	// 甲4班，乙0班
	for _, date := range []string{"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05"} {
		addShift(sched, people[0].ID, date, "day", 8, 8)
	}

	m := NewFairnessAnalyzer(shiftTypes).Analyze(sched, people)

	if m.WorkloadGini <= 0 {
		t.Errorf("倾斜分配时基尼系数 = %.3f, 应大于0", m.WorkloadGini)
	}
	if m.MaxHours != 32 || m.MinHours != 0 {
		t.Errorf("极值 = (%.1f, %.1f), expected (32, 0)", m.MaxHours, m.MinHours)
	}

	// 无分配的人员计入统计
	if len(m.PersonStats) != 2 {
		t.Fatalf("人员统计数 = %d, expected 2", len(m.PersonStats))
	}
	// 按工时降序排列
	if m.PersonStats[0].PersonName != "甲" {
		t.Errorf("工时最多的人员应排在首位, got %s", m.PersonStats[0].PersonName)
	}
	if m.PersonStats[1].TotalHours != 0 {
		t.Errorf("乙的工时 = %.1f, expected 0", m.PersonStats[1].TotalHours)
	}
}

func TestFairness_NightAndWeekendCounts(t *testing.T) {
	sched := model.NewSchedule("2026-03-02", "2026-03-08")
	people := []*model.Person{
		{BaseModel: model.NewBaseModel(), Name: "甲"},
	}

	addShift(sched, people[0].ID, "2026-03-02", "night", 22, 10) // 周一夜班
	addShift(sched, people[0].ID, "2026-03-07", "day", 8, 8)     // 周六白班

	m := NewFairnessAnalyzer(shiftTypes).Analyze(sched, people)

	if m.PersonStats[0].NightShifts != 1 {
		t.Errorf("夜班数 = %d, expected 1", m.PersonStats[0].NightShifts)
	}
	if m.PersonStats[0].WeekendShifts != 1 {
		t.Errorf("周末班数 = %d, expected 1", m.PersonStats[0].WeekendShifts)
	}
}

func TestFairness_EmptySchedule(t *testing.T) {
	sched := model.NewSchedule("2026-03-02", "2026-03-08")
	m := NewFairnessAnalyzer(shiftTypes).Analyze(sched, nil)

	if m.OverallFairnessScore != 100 {
		t.Errorf("空排班综合评分 = %.1f, expected 100", m.OverallFairnessScore)
	}
}

func TestGini(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"空集合", nil, 0},
		{"全零", []float64{0, 0, 0}, 0},
		{"完全均衡", []float64{10, 10, 10, 10}, 0},
		{"完全集中", []float64{0, 0, 0, 40}, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gini(tt.values); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("gini(%v) = %.4f, expected %.4f", tt.values, got, tt.expected)
			}
		})
	}
}
