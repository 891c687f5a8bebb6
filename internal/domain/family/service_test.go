package family

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type fakeFamilyRepo struct {
	members map[string]*Member
}

func newFakeFamilyRepo() *fakeFamilyRepo {
	return &fakeFamilyRepo{members: make(map[string]*Member)}
}

func (r *fakeFamilyRepo) ListMembers(ctx context.Context, userID string) ([]Member, error) {
	items := make([]Member, 0)
	for _, member := range r.members {
		if member.UserID == userID {
			items = append(items, *member)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (r *fakeFamilyRepo) GetMemberByID(ctx context.Context, userID, memberID string) (*Member, error) {
	member, ok := r.members[memberID]
	if !ok || member.UserID != userID {
		return nil, ErrMemberNotFound
	}
	copied := *member
	return &copied, nil
}

func (r *fakeFamilyRepo) CreateMember(ctx context.Context, member *Member) error {
	copied := *member
	r.members[member.ID] = &copied
	return nil
}

func (r *fakeFamilyRepo) UpdateMember(ctx context.Context, member *Member) error {
	if _, ok := r.members[member.ID]; !ok {
		return ErrMemberNotFound
	}
	copied := *member
	r.members[member.ID] = &copied
	return nil
}

func (r *fakeFamilyRepo) DeleteMember(ctx context.Context, userID, memberID string) (bool, error) {
	member, ok := r.members[memberID]
	if !ok || member.UserID != userID {
		return false, nil
	}
	delete(r.members, memberID)
	return true, nil
}

func TestCreateMemberSuccess(t *testing.T) {
	repo := newFakeFamilyRepo()
	svc := NewService(repo)

	dob := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	created, err := svc.CreateMember(context.Background(), CreateMemberInput{
		UserID:       "user-1",
		Name:         "  Priya ",
		Relationship: "Spouse",
		DateOfBirth:  &dob,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Name != "Priya" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if created.Relationship != RelationshipSpouse {
		t.Fatalf("expected relationship normalized, got %q", created.Relationship)
	}
	if repo.members[created.ID] == nil {
		t.Fatalf("member not stored")
	}
}

func TestCreateMemberInvalidRelationship(t *testing.T) {
	svc := NewService(newFakeFamilyRepo())

	_, err := svc.CreateMember(context.Background(), CreateMemberInput{
		UserID:       "user-1",
		Name:         "Priya",
		Relationship: "cousin",
	})
	if !errors.Is(err, ErrInvalidRelationship) {
		t.Fatalf("expected ErrInvalidRelationship, got %v", err)
	}
}

func TestCreateMemberEmptyName(t *testing.T) {
	svc := NewService(newFakeFamilyRepo())

	_, err := svc.CreateMember(context.Background(), CreateMemberInput{
		UserID:       "user-1",
		Name:         "   ",
		Relationship: RelationshipChild,
	})
	if err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestUpdateMemberSuccess(t *testing.T) {
	repo := newFakeFamilyRepo()
	repo.members["mem-1"] = &Member{
		ID:           "mem-1",
		UserID:       "user-1",
		Name:         "Priya",
		Relationship: RelationshipSpouse,
	}
	svc := NewService(repo)

	updated, err := svc.UpdateMember(context.Background(), UpdateMemberInput{
		ID:           "mem-1",
		UserID:       "user-1",
		Name:         "Priya S",
		Relationship: RelationshipSelf,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Name != "Priya S" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}
	if updated.Relationship != RelationshipSelf {
		t.Fatalf("expected updated relationship, got %q", updated.Relationship)
	}
}

func TestUpdateMemberNotFound(t *testing.T) {
	svc := NewService(newFakeFamilyRepo())

	_, err := svc.UpdateMember(context.Background(), UpdateMemberInput{
		ID:           "missing",
		UserID:       "user-1",
		Name:         "Priya",
		Relationship: RelationshipSpouse,
	})
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestDeleteMemberNotFound(t *testing.T) {
	svc := NewService(newFakeFamilyRepo())
	if err := svc.DeleteMember(context.Background(), "user-1", "missing"); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestListMembersScopedToUser(t *testing.T) {
	repo := newFakeFamilyRepo()
	repo.members["mem-1"] = &Member{ID: "mem-1", UserID: "user-1", Name: "Priya", Relationship: RelationshipSpouse}
	repo.members["mem-2"] = &Member{ID: "mem-2", UserID: "user-2", Name: "Jan", Relationship: RelationshipSelf}
	svc := NewService(repo)

	members, err := svc.ListMembers(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(members) != 1 || members[0].ID != "mem-1" {
		t.Fatalf("expected only user-1 members, got %+v", members)
	}
}
