// Package service 实现收藏夹业务逻辑。
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MorseWayne/lens_store/internal/catalog"
	"github.com/MorseWayne/lens_store/internal/domain"
	"github.com/MorseWayne/lens_store/internal/snapshot"
)

// FavoritesService 定义收藏夹业务逻辑接口
// 以 ProductID 为唯一键；与购物车一致，每次变更后整体快照，
// 读取时损坏快照降级为空收藏夹
type FavoritesService interface {
	// Favorites 返回当前收藏夹
	Favorites(ctx context.Context, sessionID string) (*domain.FavoritesResponse, error)

	// Add 加入收藏；已收藏时为幂等空操作，保留首次的 AddedAt
	Add(ctx context.Context, sessionID string, productID int64) (*domain.FavoritesResponse, error)

	// Remove 取消收藏；未收藏时静默成功
	Remove(ctx context.Context, sessionID string, productID int64) (*domain.FavoritesResponse, error)

	// Toggle 切换收藏状态，返回切换后是否处于收藏中
	Toggle(ctx context.Context, sessionID string, productID int64) (bool, *domain.FavoritesResponse, error)

	// IsFavorite 查询商品是否已收藏
	IsFavorite(ctx context.Context, sessionID string, productID int64) (bool, error)

	// Clear 清空收藏夹
	Clear(ctx context.Context, sessionID string) error
}

// favoritesService 实现FavoritesService接口
type favoritesService struct {
	catalog   *catalog.Catalog
	snapshots snapshot.Store
	logger    *zap.Logger
	now       func() time.Time
}

// NewFavoritesService 创建收藏夹服务实例
func NewFavoritesService(cat *catalog.Catalog, snapshots snapshot.Store, logger *zap.Logger) FavoritesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &favoritesService{
		catalog:   cat,
		snapshots: snapshots,
		logger:    logger,
		now:       time.Now,
	}
}

// Favorites 返回当前收藏夹
func (s *favoritesService) Favorites(ctx context.Context, sessionID string) (*domain.FavoritesResponse, error) {
	return buildFavoritesResponse(s.loadFavorites(ctx, sessionID)), nil
}

// Add 加入收藏
func (s *favoritesService) Add(ctx context.Context, sessionID string, productID int64) (*domain.FavoritesResponse, error) {
	favorites, changed, err := s.add(ctx, sessionID, productID)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.persist(ctx, sessionID, favorites); err != nil {
			return nil, err
		}
	}
	return buildFavoritesResponse(favorites), nil
}

// Remove 取消收藏
func (s *favoritesService) Remove(ctx context.Context, sessionID string, productID int64) (*domain.FavoritesResponse, error) {
	favorites := s.loadFavorites(ctx, sessionID)

	kept := favorites[:0]
	for i := range favorites {
		if favorites[i].ProductID != productID {
			kept = append(kept, favorites[i])
		}
	}

	if err := s.persist(ctx, sessionID, kept); err != nil {
		return nil, err
	}
	return buildFavoritesResponse(kept), nil
}

// Toggle 切换收藏状态
// 已收藏则取消；未收藏且商品存在于目录则加入；
// 未收藏且商品不在目录时无法补全必要字段，视为空操作
func (s *favoritesService) Toggle(ctx context.Context, sessionID string, productID int64) (bool, *domain.FavoritesResponse, error) {
	favorites := s.loadFavorites(ctx, sessionID)

	for i := range favorites {
		if favorites[i].ProductID == productID {
			resp, err := s.Remove(ctx, sessionID, productID)
			return false, resp, err
		}
	}

	favorites, changed, err := s.add(ctx, sessionID, productID)
	if err != nil {
		if err == ErrProductNotFound {
			return false, buildFavoritesResponse(favorites), nil
		}
		return false, nil, err
	}
	if changed {
		if err := s.persist(ctx, sessionID, favorites); err != nil {
			return false, nil, err
		}
	}
	return true, buildFavoritesResponse(favorites), nil
}

// IsFavorite 查询商品是否已收藏
func (s *favoritesService) IsFavorite(ctx context.Context, sessionID string, productID int64) (bool, error) {
	for _, f := range s.loadFavorites(ctx, sessionID) {
		if f.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

// Clear 清空收藏夹
func (s *favoritesService) Clear(ctx context.Context, sessionID string) error {
	return s.persist(ctx, sessionID, []domain.FavoriteItem{})
}

// add 在内存中完成幂等加入，返回是否发生变更
func (s *favoritesService) add(ctx context.Context, sessionID string, productID int64) ([]domain.FavoriteItem, bool, error) {
	favorites := s.loadFavorites(ctx, sessionID)

	for i := range favorites {
		if favorites[i].ProductID == productID {
			// 已收藏：保留首次的 AddedAt，不产生写入
			return favorites, false, nil
		}
	}

	product, ok := s.catalog.ByID(productID)
	if !ok {
		return favorites, false, ErrProductNotFound
	}

	favorites = append(favorites, domain.FavoriteItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Category:  product.Category,
		AddedAt:   s.now(),
	})
	return favorites, true, nil
}

// loadFavorites 读取会话的收藏夹快照，损坏时降级为空
func (s *favoritesService) loadFavorites(ctx context.Context, sessionID string) []domain.FavoriteItem {
	var favorites []domain.FavoriteItem
	found, err := s.snapshots.Load(ctx, snapshot.FavoritesKey(sessionID), &favorites)
	if err != nil {
		s.logger.Warn("discarding unreadable favorites snapshot",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return nil
	}
	if !found {
		return nil
	}

	// 防御旧格式：跳过缺少商品ID的条目
	valid := favorites[:0]
	for i := range favorites {
		if favorites[i].ProductID > 0 {
			valid = append(valid, favorites[i])
		}
	}
	return valid
}

// persist 将当前收藏整体写入快照
func (s *favoritesService) persist(ctx context.Context, sessionID string, favorites []domain.FavoriteItem) error {
	if favorites == nil {
		favorites = []domain.FavoriteItem{}
	}
	if err := s.snapshots.Save(ctx, snapshot.FavoritesKey(sessionID), favorites); err != nil {
		return fmt.Errorf("persist favorites: %w", err)
	}
	return nil
}

// buildFavoritesResponse 组装响应
func buildFavoritesResponse(favorites []domain.FavoriteItem) *domain.FavoritesResponse {
	if favorites == nil {
		favorites = []domain.FavoriteItem{}
	}
	return &domain.FavoritesResponse{
		Favorites: favorites,
		Total:     len(favorites),
	}
}
