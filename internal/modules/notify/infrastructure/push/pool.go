package push

import (
	"sync"
	"time"

	"RentLink/pkg/ws"
	"RentLink/pkg/zlog"

	"go.uber.org/zap"
)

type task struct {
	userID  string
	payload interface{}
}

// Pool 实时推送的有界工作池
// Submit 只入队不等待，队列满直接丢弃；站内已落库的行是可靠兜底，
// 推送本身没有重试也没有回压
type Pool struct {
	hub     *ws.Hub
	tasks   chan task
	budget  time.Duration
	wg      sync.WaitGroup
	once    sync.Once
	closed  chan struct{}
	workers int
}

func NewPool(hub *ws.Hub, workers int, queueSize int, budget time.Duration) *Pool {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 256
	}
	if budget <= 0 {
		budget = 3 * time.Second
	}
	return &Pool{
		hub:     hub,
		tasks:   make(chan task, queueSize),
		budget:  budget,
		closed:  make(chan struct{}),
		workers: workers,
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) Stop() {
	p.once.Do(func() {
		close(p.closed)
		close(p.tasks)
	})
	p.wg.Wait()
}

// Submit 非阻塞提交，返回 false 表示被丢弃
func (p *Pool) Submit(userID string, payload interface{}) bool {
	if userID == "" || payload == nil {
		return false
	}
	select {
	case <-p.closed:
		return false
	default:
	}
	select {
	case p.tasks <- task{userID: userID, payload: payload}:
		return true
	default:
		// 队列满了直接丢，不给调用方回压
		return false
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for t := range p.tasks {
		p.deliver(t)
	}
}

// deliver 单次推送，限定预算，失败只记 debug 日志
func (p *Pool) deliver(t task) {
	defer func() {
		if r := recover(); r != nil {
			zlog.Debug("push delivery panic", zap.Any("panic", r))
		}
	}()

	done := make(chan error, 1)
	go func() {
		done <- p.hub.SendJSON(t.userID, t.payload)
	}()

	select {
	case err := <-done:
		if err != nil {
			zlog.Debug("push delivery failed", zap.String("user", t.userID), zap.Error(err))
		}
	case <-time.After(p.budget):
		zlog.Debug("push delivery timed out", zap.String("user", t.userID))
	}
}
