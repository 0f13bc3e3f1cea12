package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/myrayzsiza/cse-340/internal/models"
)

// AddToCart upserts a cart row: re-adding a vehicle already in the cart
// increments its quantity instead of inserting a second row.
func (s *Store) AddToCart(accountID, invID, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("invalid quantity %d", quantity)
	}
	_, err := s.DB.Exec(`
		INSERT INTO cart (account_id, inv_id, quantity)
		VALUES (?, ?, ?)
		ON CONFLICT (account_id, inv_id)
		DO UPDATE SET quantity = quantity + excluded.quantity`,
		accountID, invID, quantity)
	return err
}

func (s *Store) GetCartByAccountID(accountID int) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.DB.Select(&items, `
		SELECT c.cart_id, c.account_id, c.inv_id, c.quantity, c.added_date,
		       i.inv_make, i.inv_model, i.inv_year, i.inv_price, i.inv_image
		FROM cart c
		JOIN inventory i ON c.inv_id = i.inv_id
		WHERE c.account_id = ?
		ORDER BY c.added_date DESC, c.cart_id DESC`, accountID)
	return items, err
}

func (s *Store) GetCartItemByID(cartID int) (*models.CartItem, error) {
	var item models.CartItem
	err := s.DB.Get(&item, `
		SELECT c.cart_id, c.account_id, c.inv_id, c.quantity, c.added_date,
		       i.inv_make, i.inv_model, i.inv_year, i.inv_price, i.inv_image
		FROM cart c
		JOIN inventory i ON c.inv_id = i.inv_id
		WHERE c.cart_id = ?`, cartID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// UpdateCartQuantity writes the new quantity, except that anything below 1
// removes the row; a cart never holds a non-positive quantity.
func (s *Store) UpdateCartQuantity(cartID, quantity int) error {
	if quantity < 1 {
		return s.RemoveFromCart(cartID)
	}
	_, err := s.DB.Exec(`UPDATE cart SET quantity = ? WHERE cart_id = ?`, quantity, cartID)
	return err
}

func (s *Store) RemoveFromCart(cartID int) error {
	_, err := s.DB.Exec(`DELETE FROM cart WHERE cart_id = ?`, cartID)
	return err
}

// ClearCart removes every cart row for the account and reports how many
// rows were deleted.
func (s *Store) ClearCart(accountID int) (int, error) {
	res, err := s.DB.Exec(`DELETE FROM cart WHERE account_id = ?`, accountID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// GetCartItemCount counts distinct cart rows, not summed quantities; it
// feeds the cart badge.
func (s *Store) GetCartItemCount(accountID int) (int, error) {
	var count int
	err := s.DB.Get(&count, `SELECT COUNT(*) FROM cart WHERE account_id = ?`, accountID)
	return count, err
}

func (s *Store) GetCartTotal(accountID int) (float64, error) {
	var total float64
	err := s.DB.Get(&total, `
		SELECT COALESCE(SUM(i.inv_price * c.quantity), 0)
		FROM cart c
		JOIN inventory i ON c.inv_id = i.inv_id
		WHERE c.account_id = ?`, accountID)
	return total, err
}
