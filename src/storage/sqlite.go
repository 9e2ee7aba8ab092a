package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/username/subveris/backend/src/models"
)

// SQLiteStore implements Store on top of a SQLite database. Column names
// are snake_case; the translation to the domain shape happens entirely in
// this file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an open database handle. The caller owns the
// handle's lifecycle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const subscriptionColumns = `id, name, category, amount, currency, frequency, next_billing_date,
	status, usage_count, last_used_date, logo_url, description, is_detected`

func scanSubscription(row interface{ Scan(...any) error }) (models.Subscription, error) {
	var sub models.Subscription
	var lastUsed, logoURL, description sql.NullString
	err := row.Scan(&sub.ID, &sub.Name, &sub.Category, &sub.Amount, &sub.Currency,
		&sub.Frequency, &sub.NextBillingDate, &sub.Status, &sub.UsageCount,
		&lastUsed, &logoURL, &description, &sub.IsDetected)
	if err != nil {
		return models.Subscription{}, err
	}
	sub.LastUsedDate = nullableString(lastUsed)
	sub.LogoURL = nullableString(logoURL)
	sub.Description = nullableString(description)
	return sub, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullableFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

func (s *SQLiteStore) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []models.Subscription{}
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *SQLiteStore) GetSubscription(ctx context.Context, id string) (models.Subscription, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = ?`, id)
	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Subscription{}, ErrNotFound
	}
	if err != nil {
		return models.Subscription{}, fmt.Errorf("querying subscription %s: %w", id, err)
	}
	return sub, nil
}

func (s *SQLiteStore) CreateSubscription(ctx context.Context, ins models.InsertSubscription) (models.Subscription, error) {
	sub := newSubscription(ins)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO subscriptions (id, name, category, amount, currency, frequency, next_billing_date,
			status, usage_count, last_used_date, logo_url, description, is_detected)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.Category, sub.Amount, sub.Currency, sub.Frequency, sub.NextBillingDate,
		sub.Status, sub.UsageCount, sub.LastUsedDate, sub.LogoURL, sub.Description, sub.IsDetected)
	if err != nil {
		return models.Subscription{}, fmt.Errorf("inserting subscription: %w", err)
	}
	return sub, nil
}

func (s *SQLiteStore) SetSubscriptionStatus(ctx context.Context, id string, status models.SubscriptionStatus) (models.Subscription, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE subscriptions SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return models.Subscription{}, fmt.Errorf("updating subscription status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Subscription{}, ErrNotFound
	}
	return s.GetSubscription(ctx, id)
}

func (s *SQLiteStore) SetSubscriptionUsage(ctx context.Context, id string, usageCount int) (models.Subscription, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE subscriptions SET usage_count = ?, last_used_date = ? WHERE id = ?`,
		usageCount, today(), id)
	if err != nil {
		return models.Subscription{}, fmt.Errorf("updating subscription usage: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Subscription{}, ErrNotFound
	}
	return s.GetSubscription(ctx, id)
}

func (s *SQLiteStore) RecordUsage(ctx context.Context, id string) (models.Subscription, error) {
	// Logging a use reactivates the subscription regardless of its prior
	// status, including to-cancel.
	res, err := s.db.ExecContext(ctx,
		`UPDATE subscriptions SET usage_count = usage_count + 1, last_used_date = ?, status = ? WHERE id = ?`,
		today(), models.StatusActive, id)
	if err != nil {
		return models.Subscription{}, fmt.Errorf("recording subscription usage: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Subscription{}, ErrNotFound
	}
	return s.GetSubscription(ctx, id)
}

func (s *SQLiteStore) DeleteSubscription(ctx context.Context, id string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting subscription: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return false, nil
	}

	// Null out weak references so dependent records don't dangle.
	if _, err := tx.ExecContext(ctx, `UPDATE transactions SET subscription_id = NULL WHERE subscription_id = ?`, id); err != nil {
		return false, fmt.Errorf("clearing transaction references: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE insights SET subscription_id = NULL WHERE subscription_id = ?`, id); err != nil {
		return false, fmt.Errorf("clearing insight references: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing delete: %w", err)
	}
	return true, nil
}

func (s *SQLiteStore) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount, date, category, is_recurring, merchant_name, subscription_id
		 FROM transactions ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	txns := []models.Transaction{}
	for rows.Next() {
		var txn models.Transaction
		var category, merchant, subID sql.NullString
		if err := rows.Scan(&txn.ID, &txn.Description, &txn.Amount, &txn.Date,
			&category, &txn.IsRecurring, &merchant, &subID); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		txn.Category = nullableString(category)
		txn.MerchantName = nullableString(merchant)
		txn.SubscriptionID = nullableString(subID)
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

func (s *SQLiteStore) CreateTransaction(ctx context.Context, ins models.InsertTransaction) (models.Transaction, error) {
	txn := newTransaction(ins)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, description, amount, date, category, is_recurring, merchant_name, subscription_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.Description, txn.Amount, txn.Date, txn.Category, txn.IsRecurring, txn.MerchantName, txn.SubscriptionID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("inserting transaction: %w", err)
	}
	return txn, nil
}

func (s *SQLiteStore) ListInsights(ctx context.Context) ([]models.Insight, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, title, description, potential_savings, subscription_id, priority, is_read, created_at
		 FROM insights ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying insights: %w", err)
	}
	defer rows.Close()

	insights := []models.Insight{}
	for rows.Next() {
		var ins models.Insight
		var savings sql.NullFloat64
		var subID sql.NullString
		if err := rows.Scan(&ins.ID, &ins.Type, &ins.Title, &ins.Description,
			&savings, &subID, &ins.Priority, &ins.IsRead, &ins.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning insight: %w", err)
		}
		ins.PotentialSavings = nullableFloat(savings)
		ins.SubscriptionID = nullableString(subID)
		insights = append(insights, ins)
	}
	return insights, rows.Err()
}

func (s *SQLiteStore) CreateInsight(ctx context.Context, ins models.InsertInsight) (models.Insight, error) {
	insight := newInsight(ins)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO insights (id, type, title, description, potential_savings, subscription_id, priority, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		insight.ID, insight.Type, insight.Title, insight.Description,
		insight.PotentialSavings, insight.SubscriptionID, insight.Priority, insight.IsRead, insight.CreatedAt)
	if err != nil {
		return models.Insight{}, fmt.Errorf("inserting insight: %w", err)
	}
	return insight, nil
}

func (s *SQLiteStore) ListBankConnections(ctx context.Context) ([]models.BankConnection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, bank_name, account_type, last_sync, is_connected, account_mask
		 FROM bank_connections ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying bank connections: %w", err)
	}
	defer rows.Close()

	conns := []models.BankConnection{}
	for rows.Next() {
		var conn models.BankConnection
		var mask sql.NullString
		if err := rows.Scan(&conn.ID, &conn.BankName, &conn.AccountType, &conn.LastSync,
			&conn.IsConnected, &mask); err != nil {
			return nil, fmt.Errorf("scanning bank connection: %w", err)
		}
		conn.AccountMask = nullableString(mask)
		conns = append(conns, conn)
	}
	return conns, rows.Err()
}

func (s *SQLiteStore) GetBankConnection(ctx context.Context, id string) (models.BankConnection, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, bank_name, account_type, last_sync, is_connected, account_mask
		 FROM bank_connections WHERE id = ?`, id)
	var conn models.BankConnection
	var mask sql.NullString
	err := row.Scan(&conn.ID, &conn.BankName, &conn.AccountType, &conn.LastSync, &conn.IsConnected, &mask)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BankConnection{}, ErrNotFound
	}
	if err != nil {
		return models.BankConnection{}, fmt.Errorf("querying bank connection %s: %w", id, err)
	}
	conn.AccountMask = nullableString(mask)
	return conn, nil
}

func (s *SQLiteStore) CreateBankConnection(ctx context.Context, ins models.InsertBankConnection) (models.BankConnection, error) {
	conn := newBankConnection(ins)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bank_connections (id, bank_name, account_type, last_sync, is_connected, account_mask)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		conn.ID, conn.BankName, conn.AccountType, conn.LastSync, conn.IsConnected, conn.AccountMask)
	if err != nil {
		return models.BankConnection{}, fmt.Errorf("inserting bank connection: %w", err)
	}
	return conn, nil
}

func (s *SQLiteStore) SyncBankConnection(ctx context.Context, id string) (models.BankConnection, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE bank_connections SET last_sync = ? WHERE id = ?`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return models.BankConnection{}, fmt.Errorf("syncing bank connection: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.BankConnection{}, ErrNotFound
	}
	return s.GetBankConnection(ctx, id)
}

func (s *SQLiteStore) DeleteBankConnection(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bank_connections WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting bank connection: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s *SQLiteStore) GetDefaultUser(ctx context.Context) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, totp_secret, totp_enabled FROM users ORDER BY rowid ASC LIMIT 1`)
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.TOTPSecret, &user.TOTPEnabled)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("querying default user: %w", err)
	}
	return user, nil
}

func (s *SQLiteStore) getUser(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, totp_secret, totp_enabled FROM users WHERE id = ?`, id)
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.TOTPSecret, &user.TOTPEnabled)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("querying user %s: %w", id, err)
	}
	return user, nil
}

func (s *SQLiteStore) UpdateUserEmail(ctx context.Context, id, email string) (models.User, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET email = ? WHERE id = ?`, email, id)
	if err != nil {
		return models.User{}, fmt.Errorf("updating user email: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.User{}, ErrNotFound
	}
	return s.getUser(ctx, id)
}

func (s *SQLiteStore) UpdateUserPassword(ctx context.Context, id, passwordHash string) (models.User, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return models.User{}, fmt.Errorf("updating user password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.User{}, ErrNotFound
	}
	return s.getUser(ctx, id)
}

func (s *SQLiteStore) UpdateUserTOTP(ctx context.Context, id, secret string, enabled bool) (models.User, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET totp_secret = ?, totp_enabled = ? WHERE id = ?`, secret, enabled, id)
	if err != nil {
		return models.User{}, fmt.Errorf("updating user totp: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.User{}, ErrNotFound
	}
	return s.getUser(ctx, id)
}

func (s *SQLiteStore) PurgeUserData(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning purge transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"subscriptions", "transactions", "insights", "bank_connections"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("purging %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// EnsureDefaultUser inserts the seeded account if no user exists yet.
func (s *SQLiteStore) EnsureDefaultUser(ctx context.Context, username string) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil
	}
	user := DefaultUser(username)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email) VALUES (?, ?, ?)`,
		user.ID, user.Username, user.Email)
	if err != nil {
		return fmt.Errorf("inserting default user: %w", err)
	}
	return nil
}

// SeedIfEmpty loads the demo dataset when the subscriptions table is
// empty. Controlled by the SEED_DEMO_DATA config flag.
func (s *SQLiteStore) SeedIfEmpty(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscriptions`).Scan(&count); err != nil {
		return fmt.Errorf("counting subscriptions: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, sub := range DemoSubscriptions() {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO subscriptions (id, name, category, amount, currency, frequency, next_billing_date,
				status, usage_count, last_used_date, logo_url, description, is_detected)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sub.ID, sub.Name, sub.Category, sub.Amount, sub.Currency, sub.Frequency, sub.NextBillingDate,
			sub.Status, sub.UsageCount, sub.LastUsedDate, sub.LogoURL, sub.Description, sub.IsDetected)
		if err != nil {
			return fmt.Errorf("seeding subscription %s: %w", sub.Name, err)
		}
	}
	for _, ins := range DemoInsights() {
		if _, err := s.CreateInsight(ctx, models.InsertInsight{
			Type: ins.Type, Title: ins.Title, Description: ins.Description,
			PotentialSavings: ins.PotentialSavings, Priority: ins.Priority, CreatedAt: ins.CreatedAt,
		}); err != nil {
			return fmt.Errorf("seeding insight %s: %w", ins.Title, err)
		}
	}
	for _, conn := range DemoBankConnections() {
		if _, err := s.CreateBankConnection(ctx, models.InsertBankConnection{
			BankName: conn.BankName, AccountType: conn.AccountType,
			LastSync: conn.LastSync, AccountMask: conn.AccountMask,
		}); err != nil {
			return fmt.Errorf("seeding bank connection %s: %w", conn.BankName, err)
		}
	}
	return nil
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
