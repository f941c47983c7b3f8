package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		external_ref TEXT UNIQUE,
		email TEXT UNIQUE,
		password_hash TEXT,
		role TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createInvestorTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE investors (
		id TEXT PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		logo_url TEXT,
		partners TEXT DEFAULT '[]',
		aum TEXT,
		funds_info TEXT DEFAULT '[]',
		hq_location TEXT,
		other_locations TEXT DEFAULT '[]',
		investment_stage TEXT,
		investment_geo TEXT DEFAULT '[]',
		investment_focus TEXT DEFAULT '[]',
		investment_style TEXT,
		history TEXT,
		investment_concept TEXT,
		notable_investments TEXT DEFAULT '[]',
		investor_type TEXT,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createRatingTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE ratings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		investor_id TEXT NOT NULL,
		score TEXT NOT NULL,
		comments TEXT DEFAULT '{}',
		stage_of_company TEXT NOT NULL,
		position_of_founder TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (user_id, investor_id)
	);`)
	mustExec(t, db, `CREATE TABLE logs (
		id TEXT PRIMARY KEY,
		rating_id TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		log_type TEXT NOT NULL,
		message TEXT NOT NULL,
		stage_of_company TEXT NOT NULL,
		position_of_founder TEXT NOT NULL,
		status TEXT NOT NULL
	);`)
}
