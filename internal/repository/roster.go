// Package repository 提供数据访问层
package repository

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/zhiban/zhiban/pkg/model"
)

// RosterFile JSON花名册文件，离线排班时替代数据库仓储
type RosterFile struct {
	people []*model.Person
}

// rosterDocument 花名册文件结构
type rosterDocument struct {
	People []*model.Person `json:"people"`
}

// LoadRosterFile 从JSON文件加载花名册
func LoadRosterFile(path string) (*RosterFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取花名册文件失败: %w", err)
	}

	var doc rosterDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("解析花名册文件失败: %w", err)
	}

	// 文件中可以省略ID，缺失时补齐
	for _, p := range doc.People {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.Status == "" {
			p.Status = "active"
		}
	}

	return &RosterFile{people: doc.People}, nil
}

// ListActive 返回花名册中所有在职人员，保持文件顺序
func (r *RosterFile) ListActive(ctx context.Context) ([]*model.Person, error) {
	people := make([]*model.Person, 0, len(r.people))
	for _, p := range r.people {
		if p.IsActive() {
			people = append(people, p)
		}
	}
	return people, nil
}

// All 返回花名册中全部人员
func (r *RosterFile) All() []*model.Person {
	return r.people
}
