package store

import (
	"github.com/myrayzsiza/cse-340/internal/models"
)

func (s *Store) LogActivity(accountID int, actionType, description, ipAddress, userAgent string) error {
	_, err := s.DB.Exec(`
		INSERT INTO activity_log (account_id, action_type, description, ip_address, user_agent)
		VALUES (?, ?, ?, ?, ?)`,
		accountID, actionType, description, ipAddress, userAgent)
	return err
}

func (s *Store) GetActivityByAccountID(accountID, limit int) ([]models.ActivityEntry, error) {
	var es []models.ActivityEntry
	err := s.DB.Select(&es, `
		SELECT * FROM activity_log
		WHERE account_id = ?
		ORDER BY created_at DESC, activity_id DESC
		LIMIT ?`, accountID, limit)
	return es, err
}

func (s *Store) GetAllActivity(limit int) ([]models.ActivityEntry, error) {
	var es []models.ActivityEntry
	err := s.DB.Select(&es, `
		SELECT l.*, a.account_firstname, a.account_lastname, a.account_email
		FROM activity_log l
		JOIN account a ON l.account_id = a.account_id
		ORDER BY l.created_at DESC, l.activity_id DESC
		LIMIT ?`, limit)
	return es, err
}
