package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDriver(t *testing.T) {
	tests := []struct {
		url        string
		wantDriver string
	}{
		{"libsql://revuloop-prod.turso.io", "libsql"},
		{"wss://revuloop-prod.turso.io", "libsql"},
		{"https://revuloop-prod.turso.io", "libsql"},
		{"./revuloop.db", "sqlite3"},
		{"/var/lib/revuloop/revuloop.db", "sqlite3"},
		{"file:revuloop.db?cache=shared", "sqlite3"},
		{":memory:", "sqlite3"},
	}

	for _, tt := range tests {
		driver, dsn := ResolveDriver(tt.url)
		assert.Equal(t, tt.wantDriver, driver, "url %q", tt.url)
		assert.Equal(t, tt.url, dsn, "url %q", tt.url)
	}
}
