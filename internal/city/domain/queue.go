package domain

import (
	"time"

	catalog "StrategyGame/internal/catalog/domain"
)

type QueueKind int8

const (
	QueueTraining QueueKind = iota
	QueueConstruction
	QueueResearch
)

func (k QueueKind) String() string {
	switch k {
	case QueueTraining:
		return "training"
	case QueueConstruction:
		return "construction"
	case QueueResearch:
		return "research"
	}
	return "unknown"
}

// QueueEntry 是一条排队中的训练/建造/研究动作。
// 资源在入队时已扣除；Cost 记录入队时实际扣除的价格，取消时按原价全额退款。
// 不变式：ReadyAt >= StartedAt。
type QueueEntry struct {
	EntryID   string
	Kind      QueueKind
	TargetID  string // 兵种/建筑/研究 id，含义由 Kind 决定
	StartedAt time.Time
	ReadyAt   time.Time
	Quantity  int // 仅训练有意义
	Cost      map[catalog.ResourceID]int
}

// Ready 返回该条目是否已到期可结算。
func (e QueueEntry) Ready(now time.Time) bool {
	return !e.ReadyAt.After(now)
}

// RemoveEntry 从 queue 中移除 entryID 对应的条目；返回新切片、被移除的条目和是否命中。
func RemoveEntry(queue []QueueEntry, entryID string) ([]QueueEntry, QueueEntry, bool) {
	for i, e := range queue {
		if e.EntryID == entryID {
			out := make([]QueueEntry, 0, len(queue)-1)
			out = append(out, queue[:i]...)
			out = append(out, queue[i+1:]...)
			return out, e, true
		}
	}
	return queue, QueueEntry{}, false
}
