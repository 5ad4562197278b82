package database

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/sakila-admin/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.Config{
		DBUser: "root",
		DBPass: "secret",
		DBHost: "db.local",
		DBPort: "3307",
		DBName: "sakila",
	})

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "root", parsed.User)
	assert.Equal(t, "secret", parsed.Passwd)
	assert.Equal(t, "db.local:3307", parsed.Addr)
	assert.Equal(t, "sakila", parsed.DBName)
	assert.True(t, parsed.ParseTime)
}
