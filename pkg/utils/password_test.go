package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{name: "valid", password: "Passw0rd"},
		{name: "too short", password: "Pw1", wantErr: "at least 8 characters"},
		{name: "no uppercase", password: "passw0rd", wantErr: "uppercase"},
		{name: "no lowercase", password: "PASSW0RD", wantErr: "lowercase"},
		{name: "no digit", password: "Password", wantErr: "number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
