package model

import "time"

type Chat struct {
	Id        int64 `gorm:"primaryKey;autoIncrement"`
	Title     string
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Chat) TableName() string {
	return "chat"
}
