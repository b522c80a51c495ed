package admin

import "github.com/venue-next/internal/provider"

// Handler 后台管理接口处理器入口
// 说明：覆盖场馆、场地、价格规则与权限管理 API。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
