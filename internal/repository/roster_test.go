package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// 两种人员来源都必须满足 PersonLister，供 cmd/rota 按标志切换。
var (
	_ PersonLister = (*RosterFile)(nil)
	_ PersonLister = (*PersonRepository)(nil)
)

const rosterDoc = `{
	"people": [
		{"name": "张强", "code": "E001", "max_weekly_hours": 48},
		{"name": "李敏", "code": "E002", "status": "inactive"},
		{"name": "王芳", "code": "E003", "status": "active"}
	]
}`

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入花名册文件失败: %v", err)
	}
	return path
}

func TestLoadRosterFile(t *testing.T) {
	roster, err := LoadRosterFile(writeRoster(t, rosterDoc))
	if err != nil {
		t.Fatalf("LoadRosterFile() error = %v", err)
	}

	all := roster.All()
	if len(all) != 3 {
		t.Fatalf("全部人员 = %d, want 3", len(all))
	}
	for _, p := range all {
		if p.ID == uuid.Nil {
			t.Errorf("人员 %s 缺失的ID应被补齐", p.Code)
		}
	}
	// 未写 status 的人员默认在职
	if all[0].Status != "active" {
		t.Errorf("默认状态 = %q, want active", all[0].Status)
	}
}

func TestRosterFileListActive(t *testing.T) {
	roster, err := LoadRosterFile(writeRoster(t, rosterDoc))
	if err != nil {
		t.Fatalf("LoadRosterFile() error = %v", err)
	}

	people, err := roster.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(people) != 2 {
		t.Fatalf("在职人员 = %d, want 2", len(people))
	}
	// 保持文件顺序
	if people[0].Code != "E001" || people[1].Code != "E003" {
		t.Errorf("顺序 = [%s, %s], want [E001, E003]", people[0].Code, people[1].Code)
	}
}

func TestLoadRosterFileErrors(t *testing.T) {
	if _, err := LoadRosterFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("文件不存在应返回错误")
	}
	if _, err := LoadRosterFile(writeRoster(t, "{invalid")); err == nil {
		t.Error("非法JSON应返回错误")
	}
}
