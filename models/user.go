package models

import "time"

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(254);uniqueIndex;not null"`
	Username  string    `json:"username" gorm:"type:varchar(150);uniqueIndex;not null"`
	FirstName string    `json:"first_name" gorm:"type:varchar(150);not null"`
	LastName  string    `json:"last_name" gorm:"type:varchar(150);not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      string    `json:"-" gorm:"type:varchar(20);default:user"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// IsSuperuser - админ может редактировать и удалять чужие рецепты
func (u User) IsSuperuser() bool {
	return u.Role == RoleAdmin
}

// Subscription - подписка user на author. Самоподписка запрещена на уровне БД.
type Subscription struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:uniq_subscriptions_user_author;check:chk_subscriptions_not_self,user_id <> author_id"`
	AuthorID  uint      `json:"author_id" gorm:"not null;uniqueIndex:uniq_subscriptions_user_author;index"`
	CreatedAt time.Time `json:"created_at"`

	User   User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Author User `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
}
