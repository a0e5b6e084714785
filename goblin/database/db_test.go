package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDBConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  DBConfig
		want string
	}{
		{
			name: "defaults to sslmode disable",
			cfg:  DBConfig{Host: "localhost", Port: 5432, User: "goblin", Password: "pw", Database: "commitgoblin"},
			want: "postgres://goblin:pw@localhost:5432/commitgoblin?sslmode=disable",
		},
		{
			name: "escapes credentials",
			cfg:  DBConfig{Host: "db", Port: 6543, User: "goblin", Password: "p@ss/word", Database: "eco", SSLMode: "require"},
			want: "postgres://goblin:p%40ss%2Fword@db:6543/eco?sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
