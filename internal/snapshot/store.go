// Package snapshot 提供购物车/收藏夹状态快照的持久化抽象与实现。
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store 定义快照存储的窄接口
// 每个会话的每类状态对应一个键，值为完整状态的JSON序列化；
// Load 区分"键不存在"与"读取/解码失败"，由调用方决定降级策略
type Store interface {
	// Load 读取并反序列化指定键的快照；键不存在时返回 (false, nil)
	Load(ctx context.Context, key string, dest interface{}) (bool, error)
	// Save 序列化并写入快照，整体覆盖旧值
	Save(ctx context.Context, key string, value interface{}) error
	// Delete 删除指定键的快照
	Delete(ctx context.Context, keys ...string) error
	// Ping 检查存储连接
	Ping(ctx context.Context) error
	// Close 释放底层连接
	Close() error
}

// MemoryStore 内存快照存储实现（用于开发和测试）
type MemoryStore struct {
	data map[string][]byte
}

// NewMemoryStore 创建内存快照存储实例
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Load 读取快照值
func (m *MemoryStore) Load(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return true, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return true, nil
}

// Save 写入快照值
func (m *MemoryStore) Save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}
	m.data[key] = data
	return nil
}

// Delete 删除快照值
func (m *MemoryStore) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

// Ping 检查连接
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close 关闭存储
func (m *MemoryStore) Close() error {
	m.data = make(map[string][]byte)
	return nil
}

// SetRaw 直接写入原始字节，供测试构造损坏的快照
func (m *MemoryStore) SetRaw(key string, raw []byte) {
	m.data[key] = append([]byte(nil), raw...)
}

// NullStore 空实现（禁用持久化时使用）：写入被丢弃，读取永远为空
type NullStore struct{}

// NewNullStore 创建空快照存储实例
func NewNullStore() *NullStore {
	return &NullStore{}
}

func (n *NullStore) Load(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (n *NullStore) Save(ctx context.Context, key string, value interface{}) error {
	return nil
}

func (n *NullStore) Delete(ctx context.Context, keys ...string) error {
	return nil
}

func (n *NullStore) Ping(ctx context.Context) error {
	return nil
}

func (n *NullStore) Close() error {
	return nil
}
