package models

// User is the administrative credential allowed to open the records.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"` // bcrypt, never serialized
}

// TableName keeps the table name of existing databases.
func (User) TableName() string {
	return "users"
}
