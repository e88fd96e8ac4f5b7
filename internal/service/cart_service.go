// Package service 实现业务逻辑层，协调各种资源完成业务需求。
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/MorseWayne/lens_store/internal/catalog"
	"github.com/MorseWayne/lens_store/internal/domain"
	"github.com/MorseWayne/lens_store/internal/snapshot"
)

// 购物车相关错误定义
var (
	ErrProductNotFound = errors.New("product not found")

	// ErrCollectionNotFound 表示目录中不存在该分区
	ErrCollectionNotFound = errors.New("collection not found")
)

// CartService 定义购物车业务逻辑接口
// 购物车以会话为单位隔离；每次变更后整体快照到持久存储，
// 读取时快照缺失或损坏一律降级为空购物车
type CartService interface {
	// Cart 返回当前购物车及派生统计
	Cart(ctx context.Context, sessionID string) (*domain.CartResponse, error)

	// AddToCart 加入购物车；复合键命中已有条目时合并数量
	AddToCart(ctx context.Context, sessionID string, req *domain.AddToCartRequest) (*domain.CartResponse, error)

	// RemoveFromCart 删除条目；条目不存在时静默成功
	RemoveFromCart(ctx context.Context, sessionID string, productID int64, color, size string) (*domain.CartResponse, error)

	// UpdateQuantity 覆盖条目数量；数量小于等于0等价于删除
	UpdateQuantity(ctx context.Context, sessionID string, req *domain.UpdateQuantityRequest) (*domain.CartResponse, error)

	// ClearCart 清空购物车
	ClearCart(ctx context.Context, sessionID string) error
}

// cartService 实现CartService接口
type cartService struct {
	catalog   *catalog.Catalog
	snapshots snapshot.Store
	logger    *zap.Logger
}

// NewCartService 创建购物车服务实例
func NewCartService(cat *catalog.Catalog, snapshots snapshot.Store, logger *zap.Logger) CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cartService{
		catalog:   cat,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Cart 返回当前购物车及派生统计
func (s *cartService) Cart(ctx context.Context, sessionID string) (*domain.CartResponse, error) {
	items := s.loadItems(ctx, sessionID)
	return buildCartResponse(items), nil
}

// AddToCart 加入购物车
// 单价从目录快照；同一 (商品, 配色, 尺寸) 已存在时数量累加，否则追加新条目；
// 数量小于1时钳位为1，避免产生零数量条目
func (s *cartService) AddToCart(ctx context.Context, sessionID string, req *domain.AddToCartRequest) (*domain.CartResponse, error) {
	product, ok := s.catalog.ByID(req.ProductID)
	if !ok {
		return nil, ErrProductNotFound
	}

	quantity := req.Quantity
	if quantity < 1 {
		s.logger.Warn("clamping non-positive cart quantity",
			zap.String("session_id", sessionID),
			zap.Int64("product_id", req.ProductID),
			zap.Int("requested", req.Quantity),
		)
		quantity = 1
	}

	items := s.loadItems(ctx, sessionID)

	merged := false
	for i := range items {
		if items[i].Matches(req.ProductID, req.Color, req.Size) {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, domain.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Color:     req.Color,
			Size:      req.Size,
			Quantity:  quantity,
		})
	}

	if err := s.persist(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return buildCartResponse(items), nil
}

// RemoveFromCart 删除条目
func (s *cartService) RemoveFromCart(ctx context.Context, sessionID string, productID int64, color, size string) (*domain.CartResponse, error) {
	items := s.loadItems(ctx, sessionID)

	kept := items[:0]
	for i := range items {
		if !items[i].Matches(productID, color, size) {
			kept = append(kept, items[i])
		}
	}

	if err := s.persist(ctx, sessionID, kept); err != nil {
		return nil, err
	}
	return buildCartResponse(kept), nil
}

// UpdateQuantity 覆盖条目数量
// 目标条目不存在时静默成功；数量小于等于0时删除条目，
// 保证任何时刻持久化的条目数量都不小于1
func (s *cartService) UpdateQuantity(ctx context.Context, sessionID string, req *domain.UpdateQuantityRequest) (*domain.CartResponse, error) {
	if req.Quantity <= 0 {
		return s.RemoveFromCart(ctx, sessionID, req.ProductID, req.Color, req.Size)
	}

	items := s.loadItems(ctx, sessionID)
	for i := range items {
		if items[i].Matches(req.ProductID, req.Color, req.Size) {
			items[i].Quantity = req.Quantity
			break
		}
	}

	if err := s.persist(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return buildCartResponse(items), nil
}

// ClearCart 清空购物车
func (s *cartService) ClearCart(ctx context.Context, sessionID string) error {
	return s.persist(ctx, sessionID, []domain.CartItem{})
}

// loadItems 读取会话的购物车快照
// 快照缺失返回空；读取或解码失败记录日志后同样降级为空，
// 损坏的快照绝不向上传播为错误
func (s *cartService) loadItems(ctx context.Context, sessionID string) []domain.CartItem {
	var items []domain.CartItem
	found, err := s.snapshots.Load(ctx, snapshot.CartKey(sessionID), &items)
	if err != nil {
		s.logger.Warn("discarding unreadable cart snapshot",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return nil
	}
	if !found {
		return nil
	}

	// 防御旧格式：丢弃数量非法的条目而不是整车失败
	valid := items[:0]
	for i := range items {
		if items[i].Quantity >= 1 && items[i].ProductID > 0 {
			valid = append(valid, items[i])
		}
	}
	return valid
}

// persist 将当前条目整体写入快照
func (s *cartService) persist(ctx context.Context, sessionID string, items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	if err := s.snapshots.Save(ctx, snapshot.CartKey(sessionID), items); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

// buildCartResponse 组装响应，统计值每次重新计算
func buildCartResponse(items []domain.CartItem) *domain.CartResponse {
	if items == nil {
		items = []domain.CartItem{}
	}
	totalItems := 0
	totalPrice := 0.0
	for i := range items {
		totalItems += items[i].Quantity
		totalPrice += items[i].Subtotal()
	}
	return &domain.CartResponse{
		Items:      items,
		TotalItems: totalItems,
		TotalPrice: totalPrice,
	}
}
