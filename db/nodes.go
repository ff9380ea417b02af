package db

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/quillhost/quill/domain"
	"gorm.io/gorm"
)

// UpsertRemoteNode registers or updates a federation peer, keyed by base
// URL. Peer rows are managed administratively; the federation core only
// reads them.
func (s *Store) UpsertRemoteNode(name, baseURL, username, password string, active bool) (*domain.RemoteNode, error) {
	if name == "" || baseURL == "" {
		return nil, domain.ErrInvalidInput
	}

	var node domain.RemoteNode
	err := s.db.First(&node, "base_url = ?", baseURL).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		node = domain.RemoteNode{
			ID:        uuid.NewString(),
			Name:      name,
			BaseURL:   baseURL,
			Username:  username,
			Password:  password,
			Active:    active,
			CreatedAt: time.Now(),
		}
		if err := s.db.Create(&node).Error; err != nil {
			return nil, err
		}
		return &node, nil
	case err != nil:
		return nil, err
	}

	node.Name = name
	node.Username = username
	node.Password = password
	node.Active = active
	if err := s.db.Save(&node).Error; err != nil {
		return nil, err
	}
	return &node, nil
}

// ActiveRemoteNodes returns the active peers in stable order.
func (s *Store) ActiveRemoteNodes() ([]domain.RemoteNode, error) {
	var nodes []domain.RemoteNode
	err := s.db.Where("active = ?", true).Order("name ASC").Find(&nodes).Error
	return nodes, err
}

// RemoteNodeByCredentials matches Basic-auth credentials against an active
// peer. Both failure causes look the same to the caller.
func (s *Store) RemoteNodeByCredentials(username, password string) (*domain.RemoteNode, error) {
	if username == "" {
		return nil, domain.ErrNotFound
	}
	var node domain.RemoteNode
	err := s.db.
		Where("username = ? AND password = ? AND active = ?", username, password, true).
		First(&node).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &node, nil
}
