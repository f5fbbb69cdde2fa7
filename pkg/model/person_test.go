package model

import (
	"testing"
)

func TestPerson_IsActive(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		expected bool
	}{
		{"active人员", "active", true},
		{"inactive人员", "inactive", false},
		{"空状态", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Person{Status: tt.status}
			if result := p.IsActive(); result != tt.expected {
				t.Errorf("IsActive() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestPerson_HasSpecialty(t *testing.T) {
	p := &Person{
		Specialties: []string{"icu", "emergency"},
	}

	tests := []struct {
		tag      string
		expected bool
	}{
		{"icu", true},
		{"emergency", true},
		{"cardiology", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if result := p.HasSpecialty(tt.tag); result != tt.expected {
				t.Errorf("HasSpecialty(%s) = %v, expected %v", tt.tag, result, tt.expected)
			}
		})
	}
}

func TestPerson_IsOnLeave(t *testing.T) {
	p := &Person{
		LeaveDates: []string{"2026-03-02", "2026-03-03"},
	}

	if !p.IsOnLeave("2026-03-02") {
		t.Error("休假日期应返回true")
	}
	if p.IsOnLeave("2026-03-04") {
		t.Error("非休假日期应返回false")
	}
}

func TestPerson_Preferences(t *testing.T) {
	// 无偏好的人员
	p1 := &Person{}
	if p1.PrefersShift("day") || p1.AvoidsShift("night") {
		t.Error("无偏好人员不应命中任何偏好")
	}

	p2 := &Person{
		Preferences: &PersonPreferences{
			PreferredShifts: []string{"day"},
			AvoidShifts:     []string{"night"},
		},
	}
	if !p2.PrefersShift("day") {
		t.Error("应命中偏好班次")
	}
	if !p2.AvoidsShift("night") {
		t.Error("应命中避免班次")
	}
	if p2.PrefersShift("evening") || p2.AvoidsShift("evening") {
		t.Error("未声明的班次不应命中")
	}
}

func TestPerson_Validate(t *testing.T) {
	tests := []struct {
		name    string
		person  Person
		wantErr bool
	}{
		{"合法参数", Person{Code: "P1", MaxWeeklyHours: 48, MinRestHours: 11}, false},
		{"工时上限为零", Person{Code: "P2", MaxWeeklyHours: 0}, true},
		{"工时上限为负", Person{Code: "P3", MaxWeeklyHours: -1}, true},
		{"休息时间为负", Person{Code: "P4", MaxWeeklyHours: 48, MinRestHours: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.person.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
