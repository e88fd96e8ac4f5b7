// Package catalog 提供静态商品目录的构建、校验与只读访问。
package catalog

import (
	"fmt"

	"github.com/MorseWayne/lens_store/internal/domain"
)

// 目录分区名称常量
const (
	CollectionNewArrivals  = "new-arrivals"  // 新品
	CollectionEverydayWear = "everyday-wear" // 日常佩戴
)

// Catalog 表示进程内静态商品目录
// 在启动时构建一次并完成不变量校验，之后只读；
// 所有返回切片均为防御性拷贝，调用方修改不会影响目录本身
type Catalog struct {
	products    []domain.Product
	byID        map[int64]int
	collections map[string][]int64
}

// New 根据静态商品数据构建目录并校验不变量：
// 1) ID 全局唯一且为正数；
// 2) 价格非负；
// 3) 尺寸/配色列表若存在则非空。
// 校验失败说明静态数据配置有误，属于接线错误，直接返回 error 由入口兜底。
func New(products []domain.Product, collections map[string][]int64) (*Catalog, error) {
	c := &Catalog{
		products:    make([]domain.Product, len(products)),
		byID:        make(map[int64]int, len(products)),
		collections: make(map[string][]int64, len(collections)),
	}
	copy(c.products, products)

	for i := range c.products {
		p := &c.products[i]
		if p.ID <= 0 {
			return nil, fmt.Errorf("catalog: product %q has non-positive id %d", p.Name, p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %d", p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("catalog: product %d has negative price", p.ID)
		}
		if p.ColorCount < 1 {
			return nil, fmt.Errorf("catalog: product %d has color count %d", p.ID, p.ColorCount)
		}
		if p.Sizes != nil && len(p.Sizes) == 0 {
			return nil, fmt.Errorf("catalog: product %d has empty size list", p.ID)
		}
		if p.Colors != nil && len(p.Colors) == 0 {
			return nil, fmt.Errorf("catalog: product %d has empty color list", p.ID)
		}
		c.byID[p.ID] = i
	}

	for name, ids := range collections {
		for _, id := range ids {
			if _, ok := c.byID[id]; !ok {
				return nil, fmt.Errorf("catalog: collection %q references unknown product %d", name, id)
			}
		}
		c.collections[name] = append([]int64(nil), ids...)
	}

	return c, nil
}

// Default 构建内置的商品目录，静态数据配置错误时 panic
// 仅供进程入口使用；测试应通过 New 注入自己的数据
func Default() *Catalog {
	c, err := New(seedProducts, seedCollections)
	if err != nil {
		panic(err)
	}
	return c
}

// All 返回目录中的全部商品，保持定义顺序
func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Size 返回目录中的商品数量
func (c *Catalog) Size() int {
	return len(c.products)
}

// ByID 根据商品ID查找商品，未找到时返回 false
func (c *Catalog) ByID(id int64) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Collection 返回指定分区的商品列表，保持分区定义顺序
// 第二个返回值表示分区是否存在；已定义但为空的分区返回空列表和 true
func (c *Catalog) Collection(name string) ([]domain.Product, bool) {
	ids, ok := c.collections[name]
	if !ok {
		return nil, false
	}
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.products[c.byID[id]])
	}
	return out, true
}

// Options 返回各过滤维度的可选值集合
// 取值来自目录中实际出现的属性，按目录定义顺序去重
func (c *Catalog) Options() domain.FilterOptions {
	var opts domain.FilterOptions
	seenType := map[string]bool{}
	seenCollection := map[string]bool{}
	seenMaterial := map[string]bool{}
	seenSize := map[string]bool{}
	seenColor := map[string]bool{}

	for i := range c.products {
		p := &c.products[i]
		if p.Type != "" && !seenType[p.Type] {
			seenType[p.Type] = true
			opts.Types = append(opts.Types, p.Type)
		}
		if p.Collection != "" && !seenCollection[p.Collection] {
			seenCollection[p.Collection] = true
			opts.Collections = append(opts.Collections, p.Collection)
		}
		if p.Material != "" && !seenMaterial[p.Material] {
			seenMaterial[p.Material] = true
			opts.Materials = append(opts.Materials, p.Material)
		}
		for _, s := range p.Sizes {
			if !seenSize[s] {
				seenSize[s] = true
				opts.Sizes = append(opts.Sizes, s)
			}
		}
		for _, col := range p.Colors {
			if !seenColor[col] {
				seenColor[col] = true
				opts.Colors = append(opts.Colors, col)
			}
		}
	}
	return opts
}
