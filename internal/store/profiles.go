package store

import (
	"database/sql"
	"errors"

	"github.com/myrayzsiza/cse-340/internal/models"
)

func (s *Store) GetProfileByAccountID(accountID int) (*models.Profile, error) {
	var p models.Profile
	err := s.DB.Get(&p, `SELECT * FROM profiles WHERE account_id = ?`, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreateProfile(accountID int) (*models.Profile, error) {
	if _, err := s.DB.Exec(`INSERT INTO profiles (account_id) VALUES (?)`, accountID); err != nil {
		return nil, err
	}
	return s.GetProfileByAccountID(accountID)
}

func (s *Store) UpdateProfile(accountID int, bio, phone, address, city, state, zip, picture string) error {
	_, err := s.DB.Exec(`
		UPDATE profiles
		SET bio = ?, phone_number = ?, address = ?, city = ?, state = ?,
		    zip_code = ?, profile_picture = ?, updated_at = CURRENT_TIMESTAMP
		WHERE account_id = ?`,
		bio, phone, address, city, state, zip, picture, accountID)
	return err
}
