package store

import (
	"database/sql"
	"errors"

	"github.com/myrayzsiza/cse-340/internal/models"
)

func (s *Store) GetAllRoles() ([]models.Role, error) {
	var rs []models.Role
	err := s.DB.Select(&rs, `SELECT * FROM roles ORDER BY role_id`)
	return rs, err
}

func (s *Store) GetRoleByID(roleID int) (*models.Role, error) {
	var r models.Role
	err := s.DB.Get(&r, `SELECT * FROM roles WHERE role_id = ?`, roleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (s *Store) GetAllAccounts() ([]models.Account, error) {
	var as []models.Account
	err := s.DB.Select(&as, `
		SELECT account_id, account_firstname, account_lastname, account_email,
		       account_password, account_type, created_at
		FROM account
		ORDER BY account_lastname, account_firstname`)
	return as, err
}

func (s *Store) UpdateAccountType(accountID int, accountType string) error {
	_, err := s.DB.Exec(`UPDATE account SET account_type = ? WHERE account_id = ?`,
		accountType, accountID)
	return err
}

func (s *Store) CountAccountsByType() (map[string]int, error) {
	rows, err := s.DB.Query(`SELECT account_type, COUNT(*) FROM account GROUP BY account_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		counts[t] = n
	}
	return counts, rows.Err()
}
