package family

import (
	"context"
	"errors"

	"gorm.io/gorm"

	familydomain "finance-app-go/internal/domain/family"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListMembers(ctx context.Context, userID string) ([]familydomain.Member, error) {
	var members []familydomain.Member
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) GetMemberByID(ctx context.Context, userID, memberID string) (*familydomain.Member, error) {
	var member familydomain.Member
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, memberID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, familydomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) CreateMember(ctx context.Context, member *familydomain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *PostgresRepository) UpdateMember(ctx context.Context, member *familydomain.Member) error {
	return r.db.WithContext(ctx).
		Model(&familydomain.Member{}).
		Where("id = ? AND user_id = ?", member.ID, member.UserID).
		Updates(map[string]interface{}{
			"name":          member.Name,
			"relationship":  member.Relationship,
			"date_of_birth": member.DateOfBirth,
			"updated_at":    member.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteMember(ctx context.Context, userID, memberID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&familydomain.Member{}, "user_id = ? AND id = ?", userID, memberID)
	return result.RowsAffected > 0, result.Error
}
