package store

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"

	"github.com/lazyspender/lazyspender-go/pkg/lazyspender"
)

// CreateUser stores a new user with a generated ID.
func (s *Store) CreateUser(req *lazyspender.UserRequest) (*lazyspender.User, error) {
	user := &lazyspender.User{
		ID:       uuid.New().String(),
		Owner:    req.Owner,
		Accounts: req.Accounts,
	}

	if err := s.put(BucketUsers, user.ID, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(id string) (*lazyspender.User, error) {
	var user lazyspender.User
	if err := s.get(BucketUsers, id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces the fields of an existing user.
func (s *Store) UpdateUser(id string, req *lazyspender.UserRequest) (*lazyspender.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	user.Owner = req.Owner
	user.Accounts = req.Accounts

	if err := s.put(BucketUsers, id, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user by ID.
func (s *Store) DeleteUser(id string) error {
	return s.delete(BucketUsers, id)
}

// GetUserByOwner retrieves a user by owner name.
func (s *Store) GetUserByOwner(owner string) (*lazyspender.User, error) {
	users, err := s.ListUsers()
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Owner == owner {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// ListUsers returns all users, ordered by owner name.
func (s *Store) ListUsers() ([]lazyspender.User, error) {
	raws, err := s.list(BucketUsers)
	if err != nil {
		return nil, err
	}

	users := make([]lazyspender.User, 0, len(raws))
	for _, raw := range raws {
		var user lazyspender.User
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].Owner < users[j].Owner
	})
	return users, nil
}
