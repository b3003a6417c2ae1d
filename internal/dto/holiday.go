package dto

// ── 公休日 ──

// CreateHolidayRequest 创建公休日
type CreateHolidayRequest struct {
	HolidayDate string `json:"holiday_date" binding:"required"`
	Name        string `json:"name"         binding:"omitempty,max=100"`
}

// ImportHolidayICSRequest 从 ICS 日历导入公休日
// Content 与 URL 二选一；Year 用于过滤只导入该年份的事件，0 表示不过滤
type ImportHolidayICSRequest struct {
	Content string `json:"content" binding:"omitempty"`
	URL     string `json:"url"     binding:"omitempty,url"`
	Year    int    `json:"year"    binding:"omitempty,min=2000,max=2100"`
}

// ImportHolidayICSResponse ICS 导入结果
type ImportHolidayICSResponse struct {
	Imported int               `json:"imported"`
	Skipped  int               `json:"skipped"` // 已存在或超出年份范围
	Items    []HolidayResponse `json:"items"`
}

// HolidayResponse 公休日响应
type HolidayResponse struct {
	HolidayID   string `json:"holiday_id"`
	HolidayDate string `json:"holiday_date"`
	Name        string `json:"name"`
}

// ListHolidayRequest 查询区间内公休日
type ListHolidayRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to"   binding:"required"`
}
