// Package domain 定义收藏夹相关的业务领域模型和核心业务规则。
package domain

import "time"

// FavoriteItem 表示收藏夹中的一个条目
// 以 ProductID 为唯一键，每个商品至多收藏一次；
// AddedAt 在首次加入时写入，之后不再变化
type FavoriteItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     float64         `json:"price"`
	Image     string          `json:"image"`
	Category  ProductCategory `json:"category"`
	AddedAt   time.Time       `json:"added_at"`
}

// AddFavoriteRequest 表示加入收藏请求
type AddFavoriteRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

// ToggleFavoriteRequest 表示切换收藏状态请求
type ToggleFavoriteRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

// FavoritesResponse 表示收藏夹查询响应
type FavoritesResponse struct {
	Favorites []FavoriteItem `json:"favorites"`
	Total     int            `json:"total"`
}
