package scenario

import (
	"context"
	"testing"

	"github.com/zhiban/zhiban/pkg/model"
	"github.com/zhiban/zhiban/pkg/scheduler/solver"
	"github.com/zhiban/zhiban/pkg/validator"
)

// TestWardMonthlyRota 20人病区月度排班：满覆盖且零违规
func TestWardMonthlyRota(t *testing.T) {
	reg := loadWardRules(t)
	people := createDoctors(20)
	shifts := expandMonth(t, reg)

	if len(shifts) != 76 {
		t.Fatalf("月度班次数 = %d, expected 76", len(shifts))
	}

	result, err := solver.NewGreedySolver(reg).Solve(context.Background(), people, shifts)
	if err != nil {
		t.Fatalf("排班执行失败: %v", err)
	}

	t.Logf("覆盖率=%.1f%%, 分配数=%d, 总工时=%.0f, 耗时=%v",
		result.Statistics.CoverageRate, result.Statistics.TotalAssignments,
		result.Statistics.TotalHours, result.Duration)

	if result.Statistics.CoverageRate != 100 {
		t.Errorf("覆盖率 = %.1f, expected 100", result.Statistics.CoverageRate)
	}
	if len(result.Schedule.Violations) != 0 {
		t.Errorf("人手充足时不应有违规, got %d", len(result.Schedule.Violations))
	}

	report := validator.New(reg).Validate(result.Schedule, shifts, people)
	if report.TotalSlots != 76 {
		t.Errorf("报告总槽位 = %d, expected 76", report.TotalSlots)
	}
	if len(report.Violations) != 0 {
		t.Errorf("校验报告不应有违规, got %d", len(report.Violations))
	}
	if report.Fairness.OverallFairnessScore <= 0 {
		t.Errorf("公平性评分 = %.1f, 应大于0", report.Fairness.OverallFairnessScore)
	}
}

// TestWardRotaRespectsLeave 休假日期绝不排班
func TestWardRotaRespectsLeave(t *testing.T) {
	reg := loadWardRules(t)
	people := createDoctors(10)

	onLeave := people[0]
	onLeave.LeaveDates = []string{"2026-03-02", "2026-03-03", "2026-03-04"}

	shifts := expandMonth(t, reg)

	result, err := solver.NewGreedySolver(reg).Solve(context.Background(), people, shifts)
	if err != nil {
		t.Fatalf("排班执行失败: %v", err)
	}

	for _, a := range result.Schedule.PersonAssignments(onLeave.ID) {
		if onLeave.IsOnLeave(a.Date) {
			t.Errorf("休假日期 %s 被排班", a.Date)
		}
	}
}

// TestWardRotaDeterministic 相同输入两次生成结果完全一致
func TestWardRotaDeterministic(t *testing.T) {
	reg := loadWardRules(t)
	people := createDoctors(12)
	shifts := expandMonth(t, reg)

	first, err := solver.NewGreedySolver(reg).Solve(context.Background(), people, shifts)
	if err != nil {
		t.Fatalf("第一次排班失败: %v", err)
	}
	second, err := solver.NewGreedySolver(reg).Solve(context.Background(), people, shifts)
	if err != nil {
		t.Fatalf("第二次排班失败: %v", err)
	}

	if len(first.Schedule.Assignments) != len(second.Schedule.Assignments) {
		t.Fatalf("两次排班分配数不一致: %d != %d",
			len(first.Schedule.Assignments), len(second.Schedule.Assignments))
	}
	for i := range first.Schedule.Assignments {
		a, b := first.Schedule.Assignments[i], second.Schedule.Assignments[i]
		if a.PersonID != b.PersonID || a.ShiftID != b.ShiftID {
			t.Fatalf("第 %d 个分配不一致: %s@%s vs %s@%s",
				i, a.PersonID, a.Date, b.PersonID, b.Date)
		}
	}
}

// TestWardRotaFairSpread 满编名册下班次数分布应接近均衡
func TestWardRotaFairSpread(t *testing.T) {
	reg := loadWardRules(t)
	people := createDoctors(20)
	shifts := expandMonth(t, reg)

	result, err := solver.NewGreedySolver(reg).Solve(context.Background(), people, shifts)
	if err != nil {
		t.Fatalf("排班执行失败: %v", err)
	}

	report := validator.New(reg).Validate(result.Schedule, shifts, people)

	// 76班 / 20人 ≈ 3.8班，极差不应过大
	spread := report.Fairness.MaxShifts - report.Fairness.MinShifts
	if spread > 3 {
		t.Errorf("班次数极差 = %d, 应不超过3", spread)
	}
	if report.Fairness.WorkloadGini > 0.3 {
		t.Errorf("工时基尼系数 = %.3f, 应不超过0.3", report.Fairness.WorkloadGini)
	}
}

// TestWardRotaHardConstraintsAudit 逐人复核硬约束
func TestWardRotaHardConstraintsAudit(t *testing.T) {
	reg := loadWardRules(t)
	people := createDoctors(8)
	shifts := expandMonth(t, reg)

	result, err := solver.NewGreedySolver(reg).Solve(context.Background(), people, shifts)
	if err != nil {
		t.Fatalf("排班执行失败: %v", err)
	}

	sched := result.Schedule
	for _, p := range people {
		assignments := sched.PersonAssignments(p.ID)

		weekHours := make(map[string]float64)
		weekNights := make(map[string]int)
		workedDates := make(map[string]bool)

		for _, a := range assignments {
			week := model.WeekStart(a.Date)
			weekHours[week] += a.WorkingHours()
			if st, _ := reg.ShiftType(a.TypeCode); st.IsNight() {
				weekNights[week]++
			}
			workedDates[a.Date] = true
		}

		for week, hours := range weekHours {
			if hours > reg.Hard.MaxWeeklyHours {
				t.Errorf("%s 周 %s 工时 %.1f 超限", p.Code, week, hours)
			}
		}
		for week, nights := range weekNights {
			if nights > reg.Hard.MaxNightShiftsPerWeek {
				t.Errorf("%s 周 %s 夜班 %d 超限", p.Code, week, nights)
			}
		}

		// 连续值班天数
		run := 0
		for d := "2026-03-02"; d <= "2026-03-29"; d = model.NextDate(d) {
			if workedDates[d] {
				run++
				if run > reg.Hard.MaxConsecutiveShifts {
					t.Errorf("%s 连续值班 %d 天超限（截止 %s）", p.Code, run, d)
				}
			} else {
				run = 0
			}
		}

		// 时间窗口互不重叠
		for i := 0; i < len(assignments); i++ {
			for j := i + 1; j < len(assignments); j++ {
				if assignments[i].Window().Overlaps(assignments[j].Window()) {
					t.Errorf("%s 存在重叠分配: %s %s / %s %s", p.Code,
						assignments[i].Date, assignments[i].TypeCode,
						assignments[j].Date, assignments[j].TypeCode)
				}
			}
		}
	}
}
