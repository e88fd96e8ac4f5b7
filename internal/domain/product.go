// Package domain 定义商品相关的业务领域模型和核心业务规则。
package domain

// ProductCategory 定义商品大类
type ProductCategory string

const (
	ProductCategoryEyewear     ProductCategory = "Eyewear"     // 光学镜架
	ProductCategorySunglasses  ProductCategory = "Sunglasses"  // 太阳镜
	ProductCategoryAccessories ProductCategory = "Accessories" // 配件
)

// Product 表示商品领域模型
// 商品目录在进程启动时从静态数据构建，运行期间只读不可变
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       float64         `json:"price"`
	Image       string          `json:"image"`
	ColorCount  int             `json:"color_count"` // 可购买的配色数量（与详情页色板展示数无关）
	Category    ProductCategory `json:"category"`
	Collection  string          `json:"collection,omitempty"`
	Badge       string          `json:"badge,omitempty"`
	Description string          `json:"description,omitempty"`
	Type        string          `json:"type,omitempty"`     // 细分品类，如 Eyeglasses / Sunglasses
	Material    string          `json:"material,omitempty"` // 镜架材质
	Sizes       []string        `json:"available_sizes,omitempty"`
	Colors      []string        `json:"available_colors,omitempty"`
	Details     *ProductDetails `json:"details,omitempty"`
}

// ProductDetails 商品详情页的附加说明
type ProductDetails struct {
	Frame string `json:"frame,omitempty"`
	Lens  string `json:"lens,omitempty"`
}

// HasSize 判断商品是否提供指定尺寸
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// HasColor 判断商品是否提供指定配色
func (p *Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// ProductListResponse 表示商品列表查询响应
type ProductListResponse struct {
	Products []Product `json:"products"` // 商品列表
	Total    int       `json:"total"`    // 过滤后的商品数
}

// FilterOptions 表示各过滤维度的可选值集合，供筛选栏渲染使用
type FilterOptions struct {
	Types       []string `json:"types"`
	Collections []string `json:"collections"`
	Materials   []string `json:"materials"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
}
