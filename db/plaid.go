package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// PlaidItem is one linked bank connection. The access token never
// leaves the database layer except to call Plaid.
type PlaidItem struct {
	ID          string
	UserID      string
	AccessToken string
	ItemID      string
	Status      string
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
}

const plaidItemColumns = `id, user_id, access_token, item_id, status, created_at, updated_at`

func scanPlaidItem(row *sql.Row) (*PlaidItem, error) {
	item := &PlaidItem{}
	err := row.Scan(
		&item.ID, &item.UserID, &item.AccessToken,
		&item.ItemID, &item.Status, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning plaid item: %v", err)
	}
	return item, nil
}

func CreatePlaidItem(userID, accessToken, itemID string) (*PlaidItem, error) {
	query := `
		INSERT INTO plaid_items (user_id, access_token, item_id, status)
		VALUES ($1, $2, $3, 'active')
		RETURNING ` + plaidItemColumns
	item, err := scanPlaidItem(DB.QueryRow(query, userID, accessToken, itemID))
	if err != nil {
		return nil, fmt.Errorf("error creating plaid item: %v", err)
	}
	return item, nil
}

func GetPlaidItemsByUserID(userID string) ([]*PlaidItem, error) {
	query := `
		SELECT ` + plaidItemColumns + `
		FROM plaid_items
		WHERE user_id = $1 AND status = 'active'
		ORDER BY created_at DESC
	`
	rows, err := DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting plaid items: %v", err)
	}
	defer rows.Close()

	var items []*PlaidItem
	for rows.Next() {
		item := &PlaidItem{}
		err := rows.Scan(
			&item.ID, &item.UserID, &item.AccessToken,
			&item.ItemID, &item.Status, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning plaid item: %v", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plaid items: %v", err)
	}
	return items, nil
}

func GetPlaidItemByItemID(itemID string) (*PlaidItem, error) {
	query := `SELECT ` + plaidItemColumns + ` FROM plaid_items WHERE item_id = $1`
	return scanPlaidItem(DB.QueryRow(query, itemID))
}

func UpdatePlaidItemStatus(itemID, status string) error {
	query := `
		UPDATE plaid_items
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE item_id = $2
	`
	result, err := DB.Exec(query, status, itemID)
	if err != nil {
		return fmt.Errorf("error updating plaid item status: %v", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("no plaid item found with item_id: %s", itemID)
	}
	return nil
}
