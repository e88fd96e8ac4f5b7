// Package filter 实现商品目录的多维过滤引擎。
package filter

// Sentinel 为筛选栏中表示"不限"的特殊选项值
// 对外接口仍接受该字面量，内部统一归一化为无限制变体
const Sentinel = "All"

// Criterion 表示单个过滤维度的判定条件
// 区分两种形态：无限制（接受任何值）和受限（仅接受集合内的值），
// 避免在普通字符串集合中混入 "All" 字面量造成歧义
type Criterion struct {
	unrestricted bool
	accepted     map[string]struct{}
}

// Unrestricted 返回无限制条件
func Unrestricted() Criterion {
	return Criterion{unrestricted: true}
}

// Restricted 返回仅接受给定取值集合的条件
// 空集合等价于无限制
func Restricted(values ...string) Criterion {
	if len(values) == 0 {
		return Unrestricted()
	}
	accepted := make(map[string]struct{}, len(values))
	for _, v := range values {
		accepted[v] = struct{}{}
	}
	return Criterion{accepted: accepted}
}

// NewCriterion 由用户选择构造条件并完成归一化：
// 1) 选择为空或包含 "All" 哨兵值时视为无限制；
// 2) 选择覆盖了全部已知选项时同样归一化为无限制。
// options 为该维度的全部可选值（不含哨兵），来自目录元数据。
func NewCriterion(selected []string, options []string) Criterion {
	if len(selected) == 0 {
		return Unrestricted()
	}

	accepted := make(map[string]struct{}, len(selected))
	for _, v := range selected {
		if v == Sentinel {
			return Unrestricted()
		}
		accepted[v] = struct{}{}
	}

	// 逐个选满所有选项与直接选"不限"必须等价
	if len(options) > 0 {
		covered := 0
		for _, opt := range options {
			if _, ok := accepted[opt]; ok {
				covered++
			}
		}
		if covered == len(options) {
			return Unrestricted()
		}
	}

	return Criterion{accepted: accepted}
}

// IsUnrestricted 判断条件是否为无限制形态
func (c Criterion) IsUnrestricted() bool {
	return c.unrestricted || len(c.accepted) == 0
}

// Matches 判断单值属性是否满足条件
// 受限条件下属性缺失（空串）视为不满足
func (c Criterion) Matches(value string) bool {
	if c.IsUnrestricted() {
		return true
	}
	if value == "" {
		return false
	}
	_, ok := c.accepted[value]
	return ok
}

// MatchesAny 判断多值属性是否满足条件
// 受限条件下列表为空视为不满足；任一取值命中即满足
func (c Criterion) MatchesAny(values []string) bool {
	if c.IsUnrestricted() {
		return true
	}
	for _, v := range values {
		if _, ok := c.accepted[v]; ok {
			return true
		}
	}
	return false
}

// Values 返回受限条件接受的取值列表，无限制时返回 nil
// 仅用于日志和调试输出，顺序不保证稳定
func (c Criterion) Values() []string {
	if c.IsUnrestricted() {
		return nil
	}
	out := make([]string, 0, len(c.accepted))
	for v := range c.accepted {
		out = append(out, v)
	}
	return out
}
