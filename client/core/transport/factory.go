package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/weisyn/mazegate/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/mazegate/pkg/types"
)

var errPoolClosed = fmt.Errorf("%w: client pool closed", types.ErrNetwork)

// Dialer 按节点地址获取客户端
type Dialer interface {
	Dial(ctx context.Context, endpoint string) (Client, error)
}

// ClientPool 按节点地址复用客户端
//
// 只缓存连接（http.Transport 连接池），不缓存任何链上状态。
type ClientPool struct {
	timeout time.Duration
	logger  log.Logger

	mu      sync.Mutex
	clients map[string]Client
	closed  bool
}

// 确保实现了Dialer接口
var _ Dialer = (*ClientPool)(nil)

// NewClientPool 创建客户端池
func NewClientPool(timeout time.Duration, logger log.Logger) *ClientPool {
	return &ClientPool{
		timeout: timeout,
		logger:  logger,
		clients: make(map[string]Client),
	}
}

// Dial 返回指定节点地址的客户端，首次访问时创建
func (p *ClientPool) Dial(ctx context.Context, endpoint string) (Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, errPoolClosed
	}
	if c, ok := p.clients[endpoint]; ok {
		return c, nil
	}

	c, err := NewJSONRPCClient(ctx, endpoint, p.timeout, p.logger)
	if err != nil {
		return nil, err
	}
	p.clients[endpoint] = c
	return c, nil
}

// Close 关闭所有客户端，之后 Dial 返回错误
func (p *ClientPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for endpoint, c := range p.clients {
		c.Close()
		delete(p.clients, endpoint)
	}
	p.closed = true
}
