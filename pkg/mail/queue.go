package mail

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/pkg/logger"
)

var (
	ErrQueueFull   = errors.New("mail queue full")
	ErrQueueClosed = errors.New("mail queue closed")
)

// Queue 本地异步发送队列：请求线程只负责入队，worker 调用底层 Sender 投递
type Queue struct {
	sender  Sender
	ch      chan Message
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	sent   atomic.Int64
	failed atomic.Int64
}

// NewQueue 创建发送队列，queueSize <= 0 时使用默认值
func NewQueue(sender Sender, queueSize int) *Queue {
	if queueSize <= 0 {
		queueSize = 1000
	}
	return &Queue{sender: sender, ch: make(chan Message, queueSize), timeout: 30 * time.Second}
}

// Start 启动 workers 个消费协程；返回的函数关闭队列并等待已入队邮件发完
func (q *Queue) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 2
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.loop()
	}
	return func(ctx context.Context) error {
		q.mu.Lock()
		if !q.closed {
			q.closed = true
			close(q.ch)
		}
		q.mu.Unlock()

		done := make(chan struct{})
		go func() {
			q.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (q *Queue) loop() {
	defer q.wg.Done()
	for msg := range q.ch {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		err := q.sender.Send(ctx, msg)
		cancel()
		if err != nil {
			q.failed.Add(1)
			logger.Error("send mail failed", zap.Strings("to", msg.To), zap.String("subject", msg.Subject), zap.Error(err))
			continue
		}
		q.sent.Add(1)
	}
}

// Send 入队，不阻塞；队列满时返回 ErrQueueFull
func (q *Queue) Send(_ context.Context, msg Message) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.ch <- msg:
		return nil
	default:
		logger.Warn("mail queue full, drop message", zap.Strings("to", msg.To))
		return ErrQueueFull
	}
}

// QueueLen 返回当前队列长度（采样值）
func (q *Queue) QueueLen() int { return len(q.ch) }

// Stats 已投递与失败数量
func (q *Queue) Stats() (sent, failed int64) { return q.sent.Load(), q.failed.Load() }
