package contract

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/weisyn/mazegate/pkg/types"
)

// SubmissionQueue 按发送方地址串行化交易提交
//
// 持有槽位期间完成 nonce 读取到交易提交的全过程，
// 同一地址的后继请求读到的 nonce 必然包含前序交易。
type SubmissionQueue struct {
	mu    sync.Mutex
	slots map[string]*semaphore.Weighted
}

// NewSubmissionQueue 创建提交队列
func NewSubmissionQueue() *SubmissionQueue {
	return &SubmissionQueue{
		slots: make(map[string]*semaphore.Weighted),
	}
}

// Acquire 等待该地址的提交槽位，返回释放函数
//
// ctx 取消或超时时返回 ctx.Err()，此时不持有槽位。
func (q *SubmissionQueue) Acquire(ctx context.Context, sender types.Felt) (func(), error) {
	slot := q.slot(sender)
	if err := slot.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() { slot.Release(1) })
	}, nil
}

// Senders 返回已分配槽位的地址数
func (q *SubmissionQueue) Senders() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.slots)
}

func (q *SubmissionQueue) slot(sender types.Felt) *semaphore.Weighted {
	q.mu.Lock()
	defer q.mu.Unlock()

	key := sender.String()
	s, ok := q.slots[key]
	if !ok {
		s = semaphore.NewWeighted(1)
		q.slots[key] = s
	}
	return s
}
