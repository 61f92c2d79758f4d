package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/orbit-api/pkg/config"
)

var testDBConfig = config.DatabaseConfig{
	Host:     "db.local",
	Port:     5432,
	User:     "orbit",
	Password: "secret",
	Name:     "orbit",
	SSLMode:  "disable",
}

func TestPostgresDSN(t *testing.T) {
	assert.Equal(t, "host=db.local port=5432 user=orbit password=secret dbname=orbit sslmode=disable", PostgresDSN(testDBConfig))
}

func TestMySQLDSN(t *testing.T) {
	cfg := testDBConfig
	cfg.Port = 3306
	assert.Equal(t, "orbit:secret@tcp(db.local:3306)/orbit?charset=utf8mb4&parseTime=True&loc=UTC", MySQLDSN(cfg))
}
