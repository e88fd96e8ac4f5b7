package snapshot

import "fmt"

// Redis Key 模板常量
const (
	// 购物车快照Key: store:cart:{session_id}
	cartKeyTemplate = "store:cart:%s"

	// 收藏夹快照Key: store:favorites:{session_id}
	favoritesKeyTemplate = "store:favorites:%s"
)

// CartKey 返回指定会话的购物车快照键
func CartKey(sessionID string) string {
	return fmt.Sprintf(cartKeyTemplate, sessionID)
}

// FavoritesKey 返回指定会话的收藏夹快照键
func FavoritesKey(sessionID string) string {
	return fmt.Sprintf(favoritesKeyTemplate, sessionID)
}
