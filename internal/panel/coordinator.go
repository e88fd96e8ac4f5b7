// Package panel 维护界面浮层（下拉筛选、迷你购物车、菜单等）的互斥打开状态。
// 同一会话在任意时刻最多只有一个浮层处于打开状态：打开一个浮层会自动
// 关闭同会话中已打开的其他浮层。
package panel

import "sync"

// Coordinator 按会话跟踪当前打开的浮层
// 状态仅存于进程内存，不做持久化；并发访问由互斥锁保护
type Coordinator struct {
	mu     sync.Mutex
	active map[string]string // session_id -> panel_id
}

// NewCoordinator 创建浮层协调器实例
func NewCoordinator() *Coordinator {
	return &Coordinator{active: make(map[string]string)}
}

// Activate 打开指定浮层，返回被其关闭的浮层ID（没有则为空串）
// 对已打开的浮层重复调用是无操作
func (c *Coordinator) Activate(sessionID, panelID string) (closed string) {
	if panelID == "" {
		return ""
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.active[sessionID]
	if prev == panelID {
		return ""
	}
	c.active[sessionID] = panelID
	return prev
}

// Deactivate 关闭指定浮层
// 仅当该浮层当前处于打开状态时才生效，返回是否发生了关闭
func (c *Coordinator) Deactivate(sessionID, panelID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active[sessionID] != panelID || panelID == "" {
		return false
	}
	delete(c.active, sessionID)
	return true
}

// DeactivateAll 关闭会话中所有浮层（例如点击遮罩层时）
func (c *Coordinator) DeactivateAll(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.active, sessionID)
}

// Active 返回会话当前打开的浮层ID，没有打开的浮层时返回空串
func (c *Coordinator) Active(sessionID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active[sessionID]
}

// IsActive 判断指定浮层是否处于打开状态
func (c *Coordinator) IsActive(sessionID, panelID string) bool {
	if panelID == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active[sessionID] == panelID
}
