// Package service 实现商品目录的查询与过滤逻辑。
package service

import (
	"strings"

	"github.com/MorseWayne/lens_store/internal/catalog"
	"github.com/MorseWayne/lens_store/internal/domain"
	"github.com/MorseWayne/lens_store/internal/filter"
)

// ProductService 定义商品查询业务逻辑接口
// 目录是进程内静态数据，所有查询均为纯内存操作
type ProductService interface {
	// ListProducts 按过滤条件返回商品列表，保持目录顺序
	ListProducts(criteria filter.Criteria) *domain.ProductListResponse

	// SearchProducts 按关键词在名称与描述中做大小写不敏感的子串搜索
	SearchProducts(keyword string) *domain.ProductListResponse

	// GetProduct 获取商品详情
	GetProduct(id int64) (*domain.Product, error)

	// Collection 返回指定分区的商品列表；分区不存在时返回 ErrCollectionNotFound
	Collection(name string) (*domain.ProductListResponse, error)

	// FilterOptions 返回筛选栏的可选值元数据
	FilterOptions() domain.FilterOptions
}

// productService 实现ProductService接口
type productService struct {
	catalog *catalog.Catalog
}

// NewProductService 创建商品服务实例
func NewProductService(cat *catalog.Catalog) ProductService {
	return &productService{catalog: cat}
}

// ListProducts 按过滤条件返回商品列表
func (s *productService) ListProducts(criteria filter.Criteria) *domain.ProductListResponse {
	products := filter.Apply(s.catalog.All(), criteria)
	return &domain.ProductListResponse{
		Products: products,
		Total:    len(products),
	}
}

// SearchProducts 关键词搜索
func (s *productService) SearchProducts(keyword string) *domain.ProductListResponse {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	all := s.catalog.All()

	matched := make([]domain.Product, 0, len(all))
	if needle != "" {
		for i := range all {
			if strings.Contains(strings.ToLower(all[i].Name), needle) ||
				strings.Contains(strings.ToLower(all[i].Description), needle) {
				matched = append(matched, all[i])
			}
		}
	}

	return &domain.ProductListResponse{
		Products: matched,
		Total:    len(matched),
	}
}

// GetProduct 获取商品详情
func (s *productService) GetProduct(id int64) (*domain.Product, error) {
	product, ok := s.catalog.ByID(id)
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Collection 返回指定分区的商品列表
// 分区已定义但为空时返回空列表，而非错误
func (s *productService) Collection(name string) (*domain.ProductListResponse, error) {
	products, ok := s.catalog.Collection(name)
	if !ok {
		return nil, ErrCollectionNotFound
	}
	return &domain.ProductListResponse{
		Products: products,
		Total:    len(products),
	}, nil
}

// FilterOptions 返回筛选栏的可选值元数据
func (s *productService) FilterOptions() domain.FilterOptions {
	return s.catalog.Options()
}
