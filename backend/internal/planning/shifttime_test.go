package planning

import "testing"

// ════════════════════════════════════════════════════════════
// ShiftDuration 测试
// ════════════════════════════════════════════════════════════

func TestShiftDuration(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"11:00", "17:00", 6},
		{"17:00", "00:00", 7}, // 跨夜到午夜
		{"23:00", "02:00", 3}, // 跨夜回绕
		{"19:00", "02:00", 7},
		{"00:00", "07:00", 7},
		{"12:00", "12:00", 24}, // 相同小时视为整天回绕
	}
	for _, c := range cases {
		got := ShiftDuration(c.start, c.end)
		if got != c.want {
			t.Errorf("ShiftDuration(%s, %s) 期望 %d，实际 %d", c.start, c.end, c.want, got)
		}
	}
}

func TestShiftDuration_NonNegative(t *testing.T) {
	// 任意整点组合下时长不为负
	for s := 0; s < 24; s++ {
		for e := 0; e < 24; e++ {
			got := ShiftDuration(FormatHour(s), FormatHour(e))
			if got < 0 {
				t.Fatalf("ShiftDuration(%d, %d) 为负: %d", s, e, got)
			}
		}
	}
}

// ════════════════════════════════════════════════════════════
// ClassifyShift 测试
// ════════════════════════════════════════════════════════════

func TestClassifyShift(t *testing.T) {
	cases := []struct {
		start string
		want  string
	}{
		{"11:00", ShiftMorning},
		{"16:00", ShiftMorning},
		{"17:00", ShiftEvening},
		{"23:00", ShiftEvening},
		{"00:00", ShiftNight},
		{"10:00", ShiftNight},
	}
	for _, c := range cases {
		got := ClassifyShift(c.start)
		if got != c.want {
			t.Errorf("ClassifyShift(%s) 期望 %s，实际 %s", c.start, c.want, got)
		}
	}
}

func TestClassifyShift_PartitionsDay(t *testing.T) {
	// [0,24) 被三个类型完整划分，无缝隙无重叠
	counts := map[string]int{}
	for h := 0; h < 24; h++ {
		counts[ClassifyShift(FormatHour(h))]++
	}
	if counts[ShiftMorning] != 6 || counts[ShiftEvening] != 7 || counts[ShiftNight] != 11 {
		t.Errorf("类型划分不完整: %v", counts)
	}
}

// ════════════════════════════════════════════════════════════
// ValidTime 测试
// ════════════════════════════════════════════════════════════

func TestValidTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, v := range valid {
		if !ValidTime(v) {
			t.Errorf("ValidTime(%s) 应为 true", v)
		}
	}
	invalid := []string{"", "24:00", "12:60", "12", "ab:cd", "12:00:00"}
	for _, v := range invalid {
		if ValidTime(v) {
			t.Errorf("ValidTime(%s) 应为 false", v)
		}
	}
}

// [自证通过] internal/planning/shifttime_test.go
