// Package rules 提供约束注册表：硬约束参数与软约束权重的类型化视图
package rules

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zhiban/zhiban/pkg/errors"
	"github.com/zhiban/zhiban/pkg/model"
)

// weekdayNames 周模板允许的键
var weekdayNames = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

// SoftWeight 软约束权重（命名的 weight/enabled 对）
type SoftWeight struct {
	Enabled bool    `yaml:"enabled" json:"enabled"`
	Weight  float64 `yaml:"weight" json:"weight"`
}

// Value 返回生效的权重，禁用时为 0
func (w SoftWeight) Value() float64 {
	if !w.Enabled {
		return 0
	}
	return w.Weight
}

// HardConstraints 硬约束参数
type HardConstraints struct {
	MaxConsecutiveShifts  int            `yaml:"max_consecutive_shifts" json:"max_consecutive_shifts"`
	MinRestHours          float64        `yaml:"min_rest_hours" json:"min_rest_hours"`
	MaxWeeklyHours        float64        `yaml:"max_weekly_hours" json:"max_weekly_hours"`
	MaxNightShiftsPerWeek int            `yaml:"max_night_shifts_per_week" json:"max_night_shifts_per_week"`
	MinStaffPerShift      map[string]int `yaml:"min_staff_per_shift" json:"min_staff_per_shift"`
}

// SoftConstraints 软约束权重
type SoftConstraints struct {
	RespectLeaveRequests  SoftWeight `yaml:"respect_leave_requests" json:"respect_leave_requests"`
	BalanceWeekendShifts  SoftWeight `yaml:"balance_weekend_shifts" json:"balance_weekend_shifts"`
	BalanceNightShifts    SoftWeight `yaml:"balance_night_shifts" json:"balance_night_shifts"`
	HonorShiftPreferences SoftWeight `yaml:"honor_shift_preferences" json:"honor_shift_preferences"`
}

// Registry 约束注册表。不可变值，生成排班时显式传入
// 评估器/评分器/分配器，不使用进程级可变状态。
type Registry struct {
	Hard           HardConstraints            `yaml:"hard_constraints" json:"hard_constraints"`
	Soft           SoftConstraints            `yaml:"soft_constraints" json:"soft_constraints"`
	ShiftTypes     map[string]model.ShiftType `yaml:"shift_types" json:"shift_types"`
	WeeklyTemplate map[string][]string        `yaml:"weekly_template" json:"weekly_template"`
}

// Load 从 YAML 配置文档解析并校验约束注册表
func Load(doc []byte) (*Registry, error) {
	var reg Registry
	if err := yaml.Unmarshal(doc, &reg); err != nil {
		return nil, errors.Configuration("document", "YAML 解析失败").WithCause(err)
	}

	// 班次类型的 code 以 map 键为准
	for code, st := range reg.ShiftTypes {
		st.Code = code
		reg.ShiftTypes[code] = st
	}

	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Validate 校验注册表的完整性与参数合法性
func (r *Registry) Validate() error {
	if r.Hard.MaxConsecutiveShifts <= 0 {
		return errors.Configuration("hard_constraints", "max_consecutive_shifts 必须为正数")
	}
	if r.Hard.MaxWeeklyHours <= 0 {
		return errors.Configuration("hard_constraints", "max_weekly_hours 必须为正数")
	}
	if r.Hard.MaxNightShiftsPerWeek <= 0 {
		return errors.Configuration("hard_constraints", "max_night_shifts_per_week 必须为正数")
	}
	if r.Hard.MinRestHours < 0 {
		return errors.Configuration("hard_constraints", "min_rest_hours 不能为负数")
	}

	if len(r.ShiftTypes) == 0 {
		return errors.Configuration("shift_types", "至少需要定义一种班次类型")
	}
	for code, st := range r.ShiftTypes {
		if st.Duration <= 0 {
			return errors.Configuration("shift_types", fmt.Sprintf("班次类型 '%s' 的 duration_hours 必须为正数", code))
		}
		if _, err := time.Parse(model.TimeLayout, st.StartTime); err != nil {
			return errors.Configuration("shift_types", fmt.Sprintf("班次类型 '%s' 的 start_time 格式不合法: %s", code, st.StartTime))
		}
		if _, err := time.Parse(model.TimeLayout, st.EndTime); err != nil {
			return errors.Configuration("shift_types", fmt.Sprintf("班次类型 '%s' 的 end_time 格式不合法: %s", code, st.EndTime))
		}
	}

	if len(r.WeeklyTemplate) == 0 {
		return errors.Configuration("weekly_template", "周模板不能为空")
	}
	for day, codes := range r.WeeklyTemplate {
		if !weekdayNames[day] {
			return errors.Configuration("weekly_template", fmt.Sprintf("未知的星期名称: '%s'", day))
		}
		for _, code := range codes {
			if _, ok := r.ShiftTypes[code]; !ok {
				return errors.Configuration("weekly_template", fmt.Sprintf("周模板引用了未定义的班次类型: '%s'", code))
			}
			// 每个模板引用的班次类型都必须声明覆盖人数
			if staff, ok := r.Hard.MinStaffPerShift[code]; !ok || staff <= 0 {
				return errors.Configuration("hard_constraints", fmt.Sprintf("班次类型 '%s' 缺少有效的 min_staff_per_shift 配置", code))
			}
		}
	}

	if err := validateWeight("respect_leave_requests", r.Soft.RespectLeaveRequests); err != nil {
		return err
	}
	if err := validateWeight("balance_weekend_shifts", r.Soft.BalanceWeekendShifts); err != nil {
		return err
	}
	if err := validateWeight("balance_night_shifts", r.Soft.BalanceNightShifts); err != nil {
		return err
	}
	if err := validateWeight("honor_shift_preferences", r.Soft.HonorShiftPreferences); err != nil {
		return err
	}

	return nil
}

// validateWeight 校验软约束权重非负
func validateWeight(name string, w SoftWeight) error {
	if w.Weight < 0 {
		return errors.Configuration("soft_constraints", fmt.Sprintf("'%s' 的权重不能为负数", name))
	}
	return nil
}

// ShiftType 按 code 获取班次类型定义
func (r *Registry) ShiftType(code string) (model.ShiftType, bool) {
	st, ok := r.ShiftTypes[code]
	return st, ok
}

// RequiredStaff 获取班次类型的最低覆盖人数
func (r *Registry) RequiredStaff(code string) int {
	return r.Hard.MinStaffPerShift[code]
}

// PersonMaxWeeklyHours 返回人员生效的每周工时上限：
// 人员有自定义上限时取较小值，否则取注册表值
func (r *Registry) PersonMaxWeeklyHours(p *model.Person) float64 {
	if p.MaxWeeklyHours > 0 && p.MaxWeeklyHours < r.Hard.MaxWeeklyHours {
		return p.MaxWeeklyHours
	}
	return r.Hard.MaxWeeklyHours
}

// PersonMaxConsecutive 返回人员生效的最大连续值班天数
func (r *Registry) PersonMaxConsecutive(p *model.Person) int {
	if p.MaxConsecutiveShifts > 0 && p.MaxConsecutiveShifts < r.Hard.MaxConsecutiveShifts {
		return p.MaxConsecutiveShifts
	}
	return r.Hard.MaxConsecutiveShifts
}

// PersonMinRest 返回人员生效的班次间最小休息小时数
func (r *Registry) PersonMinRest(p *model.Person) float64 {
	if p.MinRestHours > r.Hard.MinRestHours {
		return p.MinRestHours
	}
	return r.Hard.MinRestHours
}
