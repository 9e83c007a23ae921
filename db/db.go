package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// InitDB opens the Postgres connection for user/link records.
func InitDB(postgresURL string) error {
	if postgresURL == "" {
		return fmt.Errorf("POSTGRES_URL not configured")
	}

	var err error
	DB, err = sql.Open("postgres", postgresURL)
	if err != nil {
		return fmt.Errorf("error opening database: %v", err)
	}

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("error connecting to the database: %v", err)
	}

	return nil
}

// EnsureSchema creates the users table and the partial unique indexes
// that make "one verified user per identifier" a write-time guarantee
// instead of a check-then-act query.
func EnsureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id           text PRIMARY KEY,
	email             text NOT NULL DEFAULT '',
	monthly_income    double precision NOT NULL DEFAULT 0,
	currency          text NOT NULL DEFAULT 'COP',
	whatsapp_number   text,
	whatsapp_verified boolean NOT NULL DEFAULT false,
	telegram_number   text,
	telegram_chat_id  text,
	telegram_verified boolean NOT NULL DEFAULT false,
	otp               text,
	otp_platform      text,
	otp_expires_at    timestamptz,
	created_at        timestamptz NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS users_whatsapp_number_verified
	ON users (whatsapp_number) WHERE whatsapp_verified;
CREATE UNIQUE INDEX IF NOT EXISTS users_telegram_chat_id_verified
	ON users (telegram_chat_id) WHERE telegram_verified;
CREATE TABLE IF NOT EXISTS plaid_items (
	id           serial PRIMARY KEY,
	user_id      text NOT NULL REFERENCES users (user_id),
	access_token text NOT NULL,
	item_id      text NOT NULL UNIQUE,
	status       text NOT NULL DEFAULT 'active',
	created_at   timestamptz NOT NULL DEFAULT now(),
	updated_at   timestamptz NOT NULL DEFAULT now()
);
`
	if _, err := DB.Exec(schema); err != nil {
		return fmt.Errorf("error ensuring schema: %v", err)
	}
	return nil
}

// CloseDB closes the database connection
func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}
