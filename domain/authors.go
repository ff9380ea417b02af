package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Author is the identity record for both local users and remote shadows.
// Local authors carry a UUID id; remote authors are stored under their
// canonical node-local URL string. The id is immutable once assigned and is
// the sole cross-system identity key.
type Author struct {
	ID           string `gorm:"primaryKey;type:varchar(255)"`
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null"`
	DisplayName  string `gorm:"type:varchar(100)"`
	FirstName    string `gorm:"type:varchar(100)"`
	Host         string `gorm:"type:varchar(255)"`
	Github       string `gorm:"type:varchar(255)"`
	ProfileImage string `gorm:"type:varchar(255)"`
	PasswordHash string `gorm:"type:varchar(255)"`
	Approved     bool
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Author) TableName() string { return "authors" }

// IsLocal reports whether this author lives on this node: a valid UUID id
// on an active row. Remote shadows keep their full URL as id and are
// stored inactive.
func (a *Author) IsLocal() bool {
	if !a.Active {
		return false
	}
	_, err := uuid.Parse(a.ID)
	return err == nil
}

// Name resolves a human-readable name for the author, falling back through
// display name, username and first name. Never empty.
func (a *Author) Name() string {
	for _, candidate := range []string{a.DisplayName, a.Username, a.FirstName} {
		if candidate != "" {
			return candidate
		}
	}
	return fmt.Sprintf("author %s", a.ID)
}

// RemoteNode is a configured federation peer. Rows are administratively
// managed and read-only to the federation core.
type RemoteNode struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Name      string `gorm:"type:varchar(100);uniqueIndex;not null"`
	BaseURL   string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Username  string `gorm:"type:varchar(100)"`
	Password  string `gorm:"type:varchar(100)"`
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RemoteNode) TableName() string { return "remote_nodes" }

func (n *RemoteNode) String() string {
	return fmt.Sprintf("%s (%s)", n.Name, n.BaseURL)
}
