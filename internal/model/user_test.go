package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskman/internal/errors"
)

func TestUser_NormalizeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{
			name: "valid user",
			user: User{Name: "  Ann ", Age: 28, Email: " Ann@X.com "},
		},
		{
			name:    "missing name",
			user:    User{Name: "   ", Email: "ann@x.com"},
			wantErr: true,
		},
		{
			name:    "negative age",
			user:    User{Name: "Ann", Age: -1, Email: "ann@x.com"},
			wantErr: true,
		},
		{
			name:    "bad email",
			user:    User{Name: "Ann", Email: "ann-at-x"},
			wantErr: true,
		},
		{
			name:    "empty email",
			user:    User{Name: "Ann"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.user.Normalize()
			err := tt.user.Validate()
			if tt.wantErr {
				var validation *errors.ValidationError
				assert.ErrorAs(t, err, &validation)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Ann", tt.user.Name)
				assert.Equal(t, "ann@x.com", tt.user.Email)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret1"))
	assert.Error(t, ValidatePassword("abc"))
	assert.Error(t, ValidatePassword("password"))
	assert.Error(t, ValidatePassword("  password  "))
}
