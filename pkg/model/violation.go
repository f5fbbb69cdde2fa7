// Package model 定义排班引擎的核心数据模型
package model

import (
	"github.com/google/uuid"
)

// ViolationKind 违规类别
type ViolationKind string

const (
	// ViolationUnderCoverage 欠覆盖：某槽位找不到合格候选人。
	// 非致命，记录后继续生成。
	ViolationUnderCoverage ViolationKind = "under_coverage"
)

// Violation 结构化违规记录，携带足够的上下文供调用方解释
type Violation struct {
	Kind     ViolationKind `json:"kind"`
	ShiftID  uuid.UUID     `json:"shift_id"`
	TypeCode string        `json:"type_code"`
	Date     string        `json:"date"`
	Slot     int           `json:"slot"`
	Required int           `json:"required"`
	Filled   int           `json:"filled"`
	Message  string        `json:"message"`
}
