package store

import (
	"database/sql"
	"errors"

	"github.com/myrayzsiza/cse-340/internal/models"
)

func (s *Store) AddReview(inventoryID, accountID, rating int, text string) (int, error) {
	res, err := s.DB.Exec(`
		INSERT INTO reviews (inventory_id, account_id, rating, review_text)
		VALUES (?, ?, ?, ?)`,
		inventoryID, accountID, rating, text)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// UpdateReview rewrites rating and text and drops the approval flag back to
// unapproved; an edited review goes through moderation again.
func (s *Store) UpdateReview(reviewID, rating int, text string) error {
	_, err := s.DB.Exec(`
		UPDATE reviews
		SET rating = ?, review_text = ?, is_approved = 0, updated_at = CURRENT_TIMESTAMP
		WHERE review_id = ?`,
		rating, text, reviewID)
	return err
}

func (s *Store) GetReviewByID(reviewID int) (*models.Review, error) {
	var r models.Review
	err := s.DB.Get(&r, `SELECT * FROM reviews WHERE review_id = ?`, reviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (s *Store) GetReviewByAccountAndInventory(inventoryID, accountID int) (*models.Review, error) {
	var r models.Review
	err := s.DB.Get(&r, `
		SELECT * FROM reviews
		WHERE inventory_id = ? AND account_id = ?`, inventoryID, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (s *Store) GetApprovedReviews(inventoryID int) ([]models.Review, error) {
	var rs []models.Review
	err := s.DB.Select(&rs, `
		SELECT r.*, a.account_firstname, a.account_lastname
		FROM reviews r
		JOIN account a ON r.account_id = a.account_id
		WHERE r.inventory_id = ? AND r.is_approved = 1
		ORDER BY r.created_at DESC`, inventoryID)
	return rs, err
}

// GetRatingSummary aggregates approved reviews only.
func (s *Store) GetRatingSummary(inventoryID int) (avg float64, total int, err error) {
	row := s.DB.QueryRow(`
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE inventory_id = ? AND is_approved = 1`, inventoryID)
	err = row.Scan(&avg, &total)
	return avg, total, err
}

func (s *Store) GetPendingReviews() ([]models.Review, error) {
	var rs []models.Review
	err := s.DB.Select(&rs, `
		SELECT r.*, a.account_firstname, a.account_lastname, i.inv_make, i.inv_model
		FROM reviews r
		JOIN account a ON r.account_id = a.account_id
		JOIN inventory i ON r.inventory_id = i.inv_id
		WHERE r.is_approved = 0
		ORDER BY r.created_at ASC`)
	return rs, err
}

func (s *Store) ApproveReview(reviewID int) error {
	_, err := s.DB.Exec(`UPDATE reviews SET is_approved = 1 WHERE review_id = ?`, reviewID)
	return err
}

func (s *Store) DeleteReview(reviewID int) error {
	_, err := s.DB.Exec(`DELETE FROM reviews WHERE review_id = ?`, reviewID)
	return err
}
