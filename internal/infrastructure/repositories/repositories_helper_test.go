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
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_busy_timeout=5000", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

// newSchemaDB opens a fresh database carrying the full application schema.
func newSchemaDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	createRoleTables(t, db)
	createUserTables(t, db)
	createShopTables(t, db)
	createCatalogTables(t, db)
	createOrderTables(t, db)
	return db
}

func createRoleTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE roles (
		id INTEGER PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE role_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		requested_role TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		admin_id INTEGER,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX idx_role_requests_one_pending ON role_requests(user_id) WHERE status = 'PENDING';`)
}

func createUserTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		email TEXT,
		phone TEXT,
		password_hash TEXT NOT NULL,
		role_id INTEGER NOT NULL,
		profile_picture TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE profiles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER UNIQUE NOT NULL,
		name TEXT,
		address TEXT,
		city TEXT,
		country TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createShopTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE shops (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		owner_id INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE warehouses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		supplier_id INTEGER UNIQUE NOT NULL,
		name TEXT NOT NULL,
		location TEXT,
		description TEXT,
		warehouse_icon TEXT,
		capacity INTEGER,
		status TEXT NOT NULL DEFAULT 'PENDING',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createCatalogTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE categories (
		id INTEGER PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		created_by_id INTEGER NOT NULL,
		updated_by_id INTEGER,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		price NUMERIC NOT NULL CHECK (price >= 0),
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		shop_id INTEGER,
		warehouse_id INTEGER,
		category_id INTEGER,
		created_at DATETIME,
		updated_at DATETIME,
		CHECK ((shop_id IS NULL) <> (warehouse_id IS NULL))
	);`)
}

func createOrderTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		shop_id INTEGER,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		total NUMERIC NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE cart_items (
		user_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		PRIMARY KEY (user_id, product_id)
	);`)
	mustExec(t, db, `CREATE TABLE wishlist_items (
		user_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		created_at DATETIME,
		PRIMARY KEY (user_id, product_id)
	);`)
	mustExec(t, db, `CREATE TABLE notifications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		message TEXT NOT NULL,
		type TEXT NOT NULL,
		created_at DATETIME
	);`)
}
