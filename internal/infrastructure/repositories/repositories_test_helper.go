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
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
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
		uid TEXT UNIQUE NOT NULL,
		google_sub TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		email_verified BOOLEAN NOT NULL DEFAULT 0,
		first_name TEXT,
		middle_name TEXT,
		last_name TEXT,
		address TEXT,
		phone TEXT,
		date_of_birth DATETIME,
		gender TEXT,
		profile_completed BOOLEAN NOT NULL DEFAULT 0,
		kyc_status TEXT NOT NULL DEFAULT 'not_submitted',
		kyc_decline_reason TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createAdminUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE admin_users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'reviewer',
		is_active BOOLEAN NOT NULL DEFAULT 1,
		last_login_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createKYCVerificationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE kyc_verifications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		document_type TEXT NOT NULL,
		front_image TEXT NOT NULL,
		back_image TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		decline_reason TEXT,
		reviewed_by TEXT,
		submitted_at DATETIME NOT NULL,
		reviewed_at DATETIME
	);`)
}

func createPricingPlanTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE pricing_plans (
		id TEXT PRIMARY KEY,
		duration_months INTEGER NOT NULL,
		price REAL NOT NULL,
		description TEXT,
		features TEXT DEFAULT '[]',
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createDiscountCodeTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE discount_codes (
		id TEXT PRIMARY KEY,
		code TEXT UNIQUE NOT NULL,
		percentage REAL NOT NULL,
		max_uses INTEGER NOT NULL,
		current_uses INTEGER NOT NULL DEFAULT 0,
		expires_at DATETIME,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME
	);`)
}

func createPaymentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		plan_id TEXT NOT NULL,
		method TEXT NOT NULL,
		amount REAL NOT NULL,
		discount_code_id TEXT,
		discount_amount REAL NOT NULL DEFAULT 0,
		final_amount REAL NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		transaction_id TEXT,
		proof_file TEXT,
		decline_reason TEXT,
		reviewed_by TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createLicenseTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE licenses (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		payment_id TEXT UNIQUE NOT NULL,
		plan_id TEXT NOT NULL,
		license_key TEXT UNIQUE NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		expires_at DATETIME NOT NULL,
		activated_at DATETIME,
		reminder_sent BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME
	);`)
}
