// Package domain 定义购物车相关的业务领域模型和核心业务规则。
package domain

// CartItem 表示购物车中的一个条目
// 条目身份由 (ProductID, Color, Size) 复合键唯一确定；
// 单价在加入购物车时从目录快照，后续变更不回读目录
type CartItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Color     string  `json:"color"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
}

// Matches 判断条目是否匹配指定的复合键
func (i *CartItem) Matches(productID int64, color, size string) bool {
	return i.ProductID == productID && i.Color == color && i.Size == size
}

// Subtotal 返回条目小计
func (i *CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// AddToCartRequest 表示加入购物车请求
type AddToCartRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Color     string `json:"color" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity"` // 缺省为1；小于1时由服务层钳位
}

// UpdateQuantityRequest 表示修改购物车条目数量的请求
// Quantity 小于等于 0 等价于删除该条目
type UpdateQuantityRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Color     string `json:"color" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// RemoveFromCartRequest 表示删除购物车条目的请求
type RemoveFromCartRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Color     string `json:"color" binding:"required"`
	Size      string `json:"size" binding:"required"`
}

// CartResponse 表示购物车查询响应，派生统计随状态实时计算
type CartResponse struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
}
