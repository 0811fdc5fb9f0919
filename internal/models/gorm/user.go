package gorm

import "time"

// User is an identity asserted by the external auth provider. The ID is the
// provider's stable identifier, never generated locally.
type User struct {
	ID              string    `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	DisplayName     string    `gorm:"column:display_name;type:varchar(100);not null" json:"displayName"`
	ProfileImageURL *string   `gorm:"column:profile_image_url;type:text" json:"profileImageUrl"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
