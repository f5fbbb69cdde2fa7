// Package model 定义排班引擎的核心数据模型
package model

import (
	"github.com/zhiban/zhiban/pkg/errors"
)

// Person 可排班人员（值班医师/住院医师等）
type Person struct {
	BaseModel
	Name   string `json:"name"`
	Code   string `json:"code"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Status string `json:"status"` // active/inactive

	// 排班硬性参数
	MaxWeeklyHours       float64 `json:"max_weekly_hours"`       // 每周最大工时，必须 > 0
	MaxConsecutiveShifts int     `json:"max_consecutive_shifts"` // 最大连续值班天数
	MinRestHours         float64 `json:"min_rest_hours"`         // 班次间最小休息小时数，>= 0

	// 专科/资历标签（仅用于资格过滤，不参与排序）
	Specialties []string `json:"specialties,omitempty"`
	Seniority   string   `json:"seniority,omitempty"`

	// 休假日期（YYYY-MM-DD，当天不可排班）
	LeaveDates []string `json:"leave_dates,omitempty"`

	// 班次偏好
	Preferences *PersonPreferences `json:"preferences,omitempty"`
}

// PersonPreferences 人员班次偏好
type PersonPreferences struct {
	PreferredShifts []string `json:"preferred_shifts,omitempty"` // 偏好班次类型
	AvoidShifts     []string `json:"avoid_shifts,omitempty"`     // 避免班次类型
}

// IsActive 检查人员是否在职
func (p *Person) IsActive() bool {
	return p.Status == "active"
}

// HasSpecialty 检查人员是否具备某专科标签
func (p *Person) HasSpecialty(tag string) bool {
	for _, s := range p.Specialties {
		if s == tag {
			return true
		}
	}
	return false
}

// IsOnLeave 检查人员在指定日期是否休假
func (p *Person) IsOnLeave(date string) bool {
	for _, d := range p.LeaveDates {
		if d == date {
			return true
		}
	}
	return false
}

// PrefersShift 检查某班次类型是否在偏好列表中
func (p *Person) PrefersShift(typeCode string) bool {
	if p.Preferences == nil {
		return false
	}
	for _, code := range p.Preferences.PreferredShifts {
		if code == typeCode {
			return true
		}
	}
	return false
}

// AvoidsShift 检查某班次类型是否在避免列表中
func (p *Person) AvoidsShift(typeCode string) bool {
	if p.Preferences == nil {
		return false
	}
	for _, code := range p.Preferences.AvoidShifts {
		if code == typeCode {
			return true
		}
	}
	return false
}

// Validate 校验人员参数是否合法
func (p *Person) Validate() error {
	if p.MaxWeeklyHours <= 0 {
		return errors.InvalidInput("max_weekly_hours", "人员 "+p.Code+" 的每周最大工时必须为正数")
	}
	if p.MinRestHours < 0 {
		return errors.InvalidInput("min_rest_hours", "人员 "+p.Code+" 的最小休息时间不能为负数")
	}
	return nil
}
