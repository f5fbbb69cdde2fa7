// Package model 定义排班引擎的核心数据模型
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ShiftType 班次类型模板
type ShiftType struct {
	Code         string  `json:"code" yaml:"code"`
	Name         string  `json:"name" yaml:"name"`
	StartTime    string  `json:"start_time" yaml:"start_time"` // HH:MM
	EndTime      string  `json:"end_time" yaml:"end_time"`     // HH:MM，可跨午夜
	Duration     float64 `json:"duration_hours" yaml:"duration_hours"`
	Desirability float64 `json:"desirability" yaml:"desirability"` // 有符号权重，越负越不受欢迎
}

// IsNight 检查是否为夜班类型
func (t *ShiftType) IsNight() bool {
	return strings.Contains(t.Code, "night")
}

// Shift 具体班次实例（由周模板在排班周期内展开生成，生成后不可变）
type Shift struct {
	BaseModel
	Date                string    `json:"date"` // YYYY-MM-DD
	TypeCode            string    `json:"type_code"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	DurationHours       float64   `json:"duration_hours"`
	Required            int       `json:"required"` // 最低覆盖人数
	RequiredSpecialties []string  `json:"required_specialties,omitempty"`
}

// Window 返回班次的时间窗口
func (s *Shift) Window() TimeRange {
	return TimeRange{Start: s.StartTime, End: s.EndTime}
}

// Assignment 排班分配（人员-班次对）
type Assignment struct {
	ID        uuid.UUID `json:"id"`
	PersonID  uuid.UUID `json:"person_id"`
	ShiftID   uuid.UUID `json:"shift_id"`
	TypeCode  string    `json:"type_code"`
	Date      string    `json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Slot      int       `json:"slot"` // 班次内的覆盖槽位序号，从 0 起
}

// WorkingHours 计算分配的工作时长（小时）
func (a *Assignment) WorkingHours() float64 {
	return a.EndTime.Sub(a.StartTime).Hours()
}

// Window 返回分配的时间窗口
func (a *Assignment) Window() TimeRange {
	return TimeRange{Start: a.StartTime, End: a.EndTime}
}
