package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/myrayzsiza/cse-340/internal/models"
)

func (s *Store) GetAccountByID(accountID int) (*models.Account, error) {
	var a models.Account
	err := s.DB.Get(&a, `SELECT * FROM account WHERE account_id = ?`, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *Store) GetAccountByEmail(email string) (*models.Account, error) {
	var a models.Account
	err := s.DB.Get(&a, `SELECT * FROM account WHERE LOWER(account_email) = LOWER(?)`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// RegisterAccount creates a Client account and returns its id.
func (s *Store) RegisterAccount(firstName, lastName, email, hashedPassword string) (int, error) {
	res, err := s.DB.Exec(`
		INSERT INTO account (account_firstname, account_lastname, account_email, account_password, account_type)
		VALUES (?, ?, ?, ?, 'Client')`,
		firstName, lastName, email, hashedPassword)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (s *Store) UpdateAccountInfo(accountID int, firstName, lastName, email string) error {
	_, err := s.DB.Exec(`
		UPDATE account
		SET account_firstname = ?, account_lastname = ?, account_email = ?
		WHERE account_id = ?`,
		firstName, lastName, email, accountID)
	return err
}

func (s *Store) UpdatePassword(accountID int, hashedPassword string) error {
	_, err := s.DB.Exec(`UPDATE account SET account_password = ? WHERE account_id = ?`,
		hashedPassword, accountID)
	return err
}

func (s *Store) SaveResetToken(email, token string, expiresAt time.Time) error {
	_, err := s.DB.Exec(`
		UPDATE account
		SET reset_token = ?, reset_token_expires = ?
		WHERE LOWER(account_email) = LOWER(?)`,
		token, expiresAt, email)
	return err
}

// GetAccountByResetToken returns nil when the token is unknown or expired.
func (s *Store) GetAccountByResetToken(token string) (*models.Account, error) {
	var a models.Account
	err := s.DB.Get(&a, `
		SELECT * FROM account
		WHERE reset_token = ? AND reset_token_expires > ?
		LIMIT 1`,
		token, time.Now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *Store) ClearResetToken(accountID int) error {
	_, err := s.DB.Exec(`
		UPDATE account
		SET reset_token = NULL, reset_token_expires = NULL
		WHERE account_id = ?`, accountID)
	return err
}

// DeleteAccount removes the account row. Cart, profile, review and activity
// rows cascade; order rows do not, so they are deleted explicitly first.
func (s *Store) DeleteAccount(accountID int) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM orders WHERE account_id = ?`, accountID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM account WHERE account_id = ?`, accountID); err != nil {
		return err
	}
	return tx.Commit()
}
