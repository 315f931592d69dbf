package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUser_HasRole(t *testing.T) {
	tests := []struct {
		name     string
		user     *User
		role     string
		expected bool
	}{
		{
			name: "user has no roles assigned",
			user: &User{
				ID:    primitive.NewObjectID(),
				Email: "editor@example.com",
				Roles: []string{},
			},
			role:     "admin",
			expected: false,
		},
		{
			name: "user has the role",
			user: &User{
				ID:    primitive.NewObjectID(),
				Email: "editor@example.com",
				Roles: []string{"editor", "admin"},
			},
			role:     "admin",
			expected: true,
		},
		{
			name: "user has other roles only",
			user: &User{
				ID:    primitive.NewObjectID(),
				Email: "editor@example.com",
				Roles: []string{"editor"},
			},
			role:     "admin",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.HasRole(tt.role))
		})
	}
}
