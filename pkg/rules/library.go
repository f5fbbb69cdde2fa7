// Package rules 提供约束注册表：硬约束参数与软约束权重的类型化视图
package rules

// ConstraintParam 约束参数定义
type ConstraintParam struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // int, float, bool
	Description string `json:"description"`
	Default     string `json:"default,omitempty"`
	Min         string `json:"min,omitempty"`
	Max         string `json:"max,omitempty"`
}

// ConstraintDefinition 约束定义
type ConstraintDefinition struct {
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Type        string            `json:"type"` // hard 硬约束, soft 软约束
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Params      []ConstraintParam `json:"params"`
}

// Library 返回引擎支持的完整约束目录
func Library() []ConstraintDefinition {
	return []ConstraintDefinition{
		// 硬约束
		{
			Name:        "max_weekly_hours",
			DisplayName: "每周最大工时",
			Type:        "hard",
			Category:    "工时限制",
			Description: "限制人员每周的累计工作时长，分配不得使当周工时超过上限。",
			Params: []ConstraintParam{
				{Name: "max_hours", Type: "int", Description: "最大工时(小时)", Default: "48", Min: "36", Max: "72"},
			},
		},
		{
			Name:        "max_consecutive_shifts",
			DisplayName: "最大连续值班天数",
			Type:        "hard",
			Category:    "休息保障",
			Description: "限制相邻日历日上的连续值班天数，中间无空档日即视为连续。",
			Params: []ConstraintParam{
				{Name: "max_days", Type: "int", Description: "最大连续天数", Default: "5", Min: "3", Max: "7"},
			},
		},
		{
			Name:        "min_rest_hours",
			DisplayName: "班次间最小休息时间",
			Type:        "hard",
			Category:    "休息保障",
			Description: "确保最近一次分配结束与新班次开始之间有足够的休息时间。",
			Params: []ConstraintParam{
				{Name: "min_hours", Type: "int", Description: "最小休息时间(小时)", Default: "11", Min: "8", Max: "14"},
			},
		},
		{
			Name:        "max_night_shifts_per_week",
			DisplayName: "每周最大夜班数",
			Type:        "hard",
			Category:    "休息保障",
			Description: "限制人员每周承担的夜班类型班次数量。",
			Params: []ConstraintParam{
				{Name: "max_nights", Type: "int", Description: "每周最大夜班数", Default: "3", Min: "1", Max: "7"},
			},
		},
		{
			Name:        "min_staff_per_shift",
			DisplayName: "班次最低覆盖人数",
			Type:        "hard",
			Category:    "覆盖要求",
			Description: "按班次类型声明的最低人数。无法满足时记录欠覆盖违规，不中止生成。",
			Params: []ConstraintParam{
				{Name: "staff", Type: "int", Description: "最低人数", Default: "2", Min: "1", Max: "10"},
			},
		},
		{
			Name:        "specialty_required",
			DisplayName: "专科标签匹配",
			Type:        "hard",
			Category:    "资质要求",
			Description: "班次要求专科标签时，人员必须全部具备。",
			Params:      []ConstraintParam{},
		},
		{
			Name:        "leave_dates",
			DisplayName: "休假日期",
			Type:        "hard",
			Category:    "时间限制",
			Description: "人员休假当天不进行排班。",
			Params:      []ConstraintParam{},
		},

		// 软约束
		{
			Name:        "honor_shift_preferences",
			DisplayName: "班次偏好",
			Type:        "soft",
			Category:    "偏好满足",
			Description: "偏好的班次类型加分，声明避免的班次类型扣分。",
			Params: []ConstraintParam{
				{Name: "weight", Type: "float", Description: "优化权重", Default: "8", Min: "0", Max: "100"},
			},
		},
		{
			Name:        "respect_leave_requests",
			DisplayName: "尊重休假意愿",
			Type:        "soft",
			Category:    "偏好满足",
			Description: "休假相邻偏好处理的权重。",
			Params: []ConstraintParam{
				{Name: "weight", Type: "float", Description: "优化权重", Default: "10", Min: "0", Max: "100"},
			},
		},
		{
			Name:        "balance_night_shifts",
			DisplayName: "夜班均衡",
			Type:        "soft",
			Category:    "公平性",
			Description: "将夜班导向累计受欢迎度负担最少的人员。",
			Params: []ConstraintParam{
				{Name: "weight", Type: "float", Description: "优化权重", Default: "5", Min: "0", Max: "100"},
			},
		},
		{
			Name:        "balance_weekend_shifts",
			DisplayName: "周末班均衡",
			Type:        "soft",
			Category:    "公平性",
			Description: "将周末班次在人员之间均匀分配。",
			Params: []ConstraintParam{
				{Name: "weight", Type: "float", Description: "优化权重", Default: "5", Min: "0", Max: "100"},
			},
		},
	}
}
