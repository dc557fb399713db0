package domain

// User represents an account that owns favorites
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Email    string `gorm:"type:varchar(120);uniqueIndex;not null"`
	Password string `gorm:"type:varchar(80);not null"` // never serialized
	IsActive bool   `gorm:"not null"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// UserView is the transport form of a User.
type UserView struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// Serialize returns the public fields of the user.
func (u User) Serialize() UserView {
	return UserView{
		ID:       u.ID,
		Email:    u.Email,
		IsActive: u.IsActive,
	}
}
