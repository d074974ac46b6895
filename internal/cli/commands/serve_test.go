package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.Contains(t, cmd.Long, "/api/v1/analyze")

	assert.NotNil(t, cmd.Flags().Lookup("addr"), "--addr flag should exist")
	assert.NotNil(t, cmd.Flags().Lookup("no-history"), "--no-history flag should exist")
}

func TestDisplayAddr(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":8080", "localhost:8080"},
		{"127.0.0.1:9090", "127.0.0.1:9090"},
		{"0.0.0.0:80", "0.0.0.0:80"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, displayAddr(tt.addr), "displayAddr(%q)", tt.addr)
	}
}
