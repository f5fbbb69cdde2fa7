// Package timetable 将周模板在排班周期内展开为具体班次
package timetable

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhiban/zhiban/pkg/errors"
	"github.com/zhiban/zhiban/pkg/model"
	"github.com/zhiban/zhiban/pkg/rules"
)

// Expand 根据约束注册表中的周模板与班次类型定义，
// 从 startDate 起按 weeks 周展开具体班次集合。
// 展开顺序确定：日期升序，每日按模板声明顺序。
func Expand(reg *rules.Registry, startDate string, weeks int) ([]*model.Shift, error) {
	start, err := model.ParseDate(startDate)
	if err != nil {
		return nil, errors.InvalidInput("start_date", "日期格式应为 YYYY-MM-DD")
	}
	if weeks <= 0 {
		return nil, errors.InvalidInput("weeks", "排班周期必须为正数")
	}

	shifts := make([]*model.Shift, 0, weeks*7*2)

	for day := 0; day < weeks*7; day++ {
		date := start.AddDate(0, 0, day)
		dayName := strings.ToLower(date.Weekday().String())

		for _, code := range reg.WeeklyTemplate[dayName] {
			st, ok := reg.ShiftType(code)
			if !ok {
				// 注册表校验保证模板引用的类型存在
				return nil, errors.Configuration("weekly_template", "未定义的班次类型: "+code)
			}

			startTime := timeOnDate(date, st.StartTime)
			endTime := timeOnDate(date, st.EndTime)
			// 跨午夜班次顺延到次日
			if !endTime.After(startTime) {
				endTime = endTime.Add(24 * time.Hour)
			}

			shifts = append(shifts, &model.Shift{
				BaseModel:     model.BaseModel{ID: uuid.New()},
				Date:          date.Format(model.DateLayout),
				TypeCode:      code,
				StartTime:     startTime,
				EndTime:       endTime,
				DurationHours: st.Duration,
				Required:      reg.RequiredStaff(code),
			})
		}
	}

	return shifts, nil
}

// timeOnDate 在指定日期上解析 HH:MM 时刻
func timeOnDate(date time.Time, clock string) time.Time {
	t, err := time.Parse(model.TimeLayout, clock)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}
