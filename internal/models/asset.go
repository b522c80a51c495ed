package models

import "time"

// Asset 可预订资源（球场、房间等），删除为物理删除以便编码复用
type Asset struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                                       // 主键
	VenueID    uint           `gorm:"not null;uniqueIndex:idx_asset_venue_code" json:"venue_id"`                  // 所属场馆
	Code       string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_asset_venue_code" json:"code"`     // 场馆内编码（规则 target_assets 使用）
	Name       string         `gorm:"type:varchar(120);not null" json:"name"`                                     // 名称
	Kind       string         `gorm:"type:varchar(20);not null;index" json:"kind"`                                // 类型（court/room/field/lane/other）
	HourlyRate Money          `gorm:"type:decimal(20,2);not null;default:0" json:"hourly_rate"`                   // 基础时价
	Capacity   int            `gorm:"not null;default:0" json:"capacity"`                                         // 容纳人数
	IsActive   bool           `gorm:"not null;default:true;index" json:"is_active"`                               // 是否可预订
	SortOrder  int            `gorm:"not null;default:0" json:"sort_order"`                                       // 排序
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                                    // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                                                    // 更新时间
}

// TableName 指定表名
func (Asset) TableName() string {
	return "assets"
}
