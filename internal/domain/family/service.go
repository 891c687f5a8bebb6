package family

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListMembers(ctx context.Context, userID string) ([]Member, error) {
	members, err := s.repo.ListMembers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []Member{}, nil
	}
	return members, nil
}

func (s *Service) CreateMember(ctx context.Context, input CreateMemberInput) (*Member, error) {
	name, relationship, err := validateMember(input.Name, input.Relationship)
	if err != nil {
		return nil, err
	}

	member := Member{
		ID:           uuid.NewString(),
		UserID:       input.UserID,
		Name:         name,
		Relationship: relationship,
		DateOfBirth:  input.DateOfBirth,
	}

	if err := s.repo.CreateMember(ctx, &member); err != nil {
		return nil, err
	}

	return &member, nil
}

func (s *Service) UpdateMember(ctx context.Context, input UpdateMemberInput) (*Member, error) {
	name, relationship, err := validateMember(input.Name, input.Relationship)
	if err != nil {
		return nil, err
	}

	member, err := s.repo.GetMemberByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	member.Name = name
	member.Relationship = relationship
	member.DateOfBirth = input.DateOfBirth
	member.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateMember(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

func (s *Service) DeleteMember(ctx context.Context, userID, memberID string) error {
	deleted, err := s.repo.DeleteMember(ctx, userID, memberID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMemberNotFound
	}
	return nil
}

func validateMember(name, relationship string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("name is required")
	}

	relationship = strings.ToLower(strings.TrimSpace(relationship))
	switch relationship {
	case RelationshipSelf, RelationshipSpouse, RelationshipChild, RelationshipParent, RelationshipSibling, RelationshipOther:
	default:
		return "", "", ErrInvalidRelationship
	}

	return name, relationship, nil
}
