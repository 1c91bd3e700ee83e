package implementation

import (
	"context"
	"encoding/json"
	"errors"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"
	"ai-chat-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepositoryImpl struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) contract.HistoryRepository {
	return &HistoryRepositoryImpl{db: db}
}

func (r *HistoryRepositoryImpl) Save(ctx context.Context, chatId int64, turns []entity.Turn) error {
	data, err := json.Marshal(turns)
	if err != nil {
		return err
	}

	m := model.Message{ChatId: chatId, Messages: string(data)}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chatid"}},
			DoUpdates: clause.AssignmentColumns([]string{"messages"}),
		}).
		Create(&m).Error
}

func (r *HistoryRepositoryImpl) FindByChatId(ctx context.Context, chatId int64) ([]entity.Turn, bool, error) {
	var m model.Message
	if err := r.db.WithContext(ctx).First(&m, "chatid = ?", chatId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var turns []entity.Turn
	if err := json.Unmarshal([]byte(m.Messages), &turns); err != nil {
		return nil, false, err
	}
	return turns, true, nil
}

func (r *HistoryRepositoryImpl) Delete(ctx context.Context, chatId int64) error {
	return r.db.WithContext(ctx).Delete(&model.Message{}, "chatid = ?", chatId).Error
}
