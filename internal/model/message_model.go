package model

// Message holds the full serialized turn history for one chat. At most one
// row per chat; every save replaces the previous blob.
type Message struct {
	ChatId   int64  `gorm:"primaryKey;column:chatid"`
	Messages string // JSON array of role-tagged turns
}

func (Message) TableName() string {
	return "message"
}
