package filter

import "github.com/MorseWayne/lens_store/internal/domain"

// Attribute 标识参与过滤的商品属性维度
type Attribute string

const (
	AttrType       Attribute = "type"
	AttrCollection Attribute = "collection"
	AttrMaterial   Attribute = "material"
	AttrSize       Attribute = "size"
	AttrColor      Attribute = "color"
)

// Attributes 列出全部过滤维度，顺序固定
var Attributes = []Attribute{AttrType, AttrCollection, AttrMaterial, AttrSize, AttrColor}

// Criteria 表示一次过滤调用的全部条件，缺失的维度视为无限制
type Criteria map[Attribute]Criterion

// None 返回全部维度无限制的条件集合
func None() Criteria {
	return Criteria{}
}

// criterion 获取指定维度的条件，未设置时返回无限制
func (cs Criteria) criterion(attr Attribute) Criterion {
	if c, ok := cs[attr]; ok {
		return c
	}
	return Unrestricted()
}

// Apply 对商品序列应用过滤条件，返回满足全部条件的子序列
// 纯函数：不修改输入，输出是保持原顺序的新切片；
// 维度之间取交（AND），单个维度的取值集合内部取并（OR）；
// 受限维度上属性缺失的商品被排除。
// 复杂度 O(|products| × |criteria|)，对几十到几百条的目录规模足够。
func Apply(products []domain.Product, criteria Criteria) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for i := range products {
		if matches(&products[i], criteria) {
			out = append(out, products[i])
		}
	}
	return out
}

// matches 判断单个商品是否满足全部条件
func matches(p *domain.Product, criteria Criteria) bool {
	if !criteria.criterion(AttrType).Matches(p.Type) {
		return false
	}
	if !criteria.criterion(AttrCollection).Matches(p.Collection) {
		return false
	}
	if !criteria.criterion(AttrMaterial).Matches(p.Material) {
		return false
	}
	if !criteria.criterion(AttrSize).MatchesAny(p.Sizes) {
		return false
	}
	if !criteria.criterion(AttrColor).MatchesAny(p.Colors) {
		return false
	}
	return true
}
