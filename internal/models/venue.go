package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Venue 场馆（租户）
type Venue struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                          // 主键
	Code      string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`             // 场馆编码
	Name      string         `gorm:"type:varchar(120);not null" json:"name"`                        // 名称
	Currency  string         `gorm:"type:varchar(8);not null;default:'CNY'" json:"currency"`        // 结算币种
	Timezone  string         `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`       // IANA 时区
	Address   string         `gorm:"type:varchar(255);not null;default:''" json:"address"`          // 地址
	IsActive  bool           `gorm:"not null;default:true;index" json:"is_active"`                  // 是否启用
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (Venue) TableName() string {
	return "venues"
}

// Location 场馆时区，无法识别时回退 UTC
func (v *Venue) Location() *time.Location {
	if v == nil {
		return time.UTC
	}
	name := strings.TrimSpace(v.Timezone)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
