// internal/models/user.go
package models

type User struct {
	BaseModel
	Username      string  `json:"username" gorm:"uniqueIndex;size:50;not null"`
	WechatOpenID  *string `json:"wechat_openid" gorm:"column:wechat_openid;uniqueIndex;size:100"`
	WechatUnionID *string `json:"-" gorm:"uniqueIndex;size:100"`
	Nickname      string  `json:"nickname" gorm:"size:100"`
	Avatar        string  `json:"avatar" gorm:"size:500"`
	Phone         string  `json:"phone" gorm:"size:20"`
	Address       string  `json:"address" gorm:"type:text"`

	// Relationships
	Products []Product `json:"products,omitempty" gorm:"foreignKey:SellerID"`
	Orders   []Order   `json:"orders,omitempty" gorm:"foreignKey:BuyerID"`
}

func (User) TableName() string {
	return "users"
}
