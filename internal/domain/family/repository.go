package family

import "context"

type Repository interface {
	ListMembers(ctx context.Context, userID string) ([]Member, error)
	GetMemberByID(ctx context.Context, userID, memberID string) (*Member, error)
	CreateMember(ctx context.Context, member *Member) error
	UpdateMember(ctx context.Context, member *Member) error
	DeleteMember(ctx context.Context, userID, memberID string) (bool, error)
}
