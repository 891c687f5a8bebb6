package chat

import (
	"context"

	"gorm.io/gorm"

	chatdomain "finance-app-go/internal/domain/chat"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListMessages(ctx context.Context, userID, chatContext string) ([]chatdomain.Message, error) {
	var messages []chatdomain.Message
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND context = ?", userID, chatContext).
		Order("message_order asc").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *PostgresRepository) NextMessageOrder(ctx context.Context, userID, chatContext string) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&chatdomain.Message{}).
		Where("user_id = ? AND context = ?", userID, chatContext).
		Select("MAX(message_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

func (r *PostgresRepository) CreateMessages(ctx context.Context, messages []chatdomain.Message) error {
	if len(messages) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&messages).Error
}

func (r *PostgresRepository) DeleteMessages(ctx context.Context, userID, chatContext string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND context = ?", userID, chatContext).
		Delete(&chatdomain.Message{}).Error
}
