package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/myrayzsiza/cse-340/internal/models"
)

// PlaceOrdersFromSnapshot materializes a confirmed pending order: one order
// row per snapshot line, then the cart is cleared, all inside a single
// transaction so a mid-loop failure cannot leave a half-placed order.
// Returns the new order ids in snapshot line order.
func (s *Store) PlaceOrdersFromSnapshot(p models.PendingOrder) ([]int, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	orderIDs := make([]int, 0, len(p.Items))
	for _, item := range p.Items {
		res, err := tx.Exec(`
			INSERT INTO orders (account_id, inv_id, order_phone, order_address, order_city, order_state, order_zip, order_payment_account)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.AccountID, item.InvID, p.Phone, p.Address, p.City, p.State, p.Zip, p.PaymentAccount)
		if err != nil {
			return nil, fmt.Errorf("failed to create order for vehicle %d: %w", item.InvID, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		orderIDs = append(orderIDs, int(id))
	}

	if _, err := tx.Exec(`DELETE FROM cart WHERE account_id = ?`, p.AccountID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return orderIDs, nil
}

func (s *Store) GetOrderByID(orderID int) (*models.Order, error) {
	var o models.Order
	err := s.DB.Get(&o, `
		SELECT o.*, i.inv_make, i.inv_model, i.inv_year, i.inv_price
		FROM orders o
		JOIN inventory i ON o.inv_id = i.inv_id
		WHERE o.order_id = ?`, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (s *Store) GetOrdersByAccountID(accountID int) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Select(&orders, `
		SELECT o.*, i.inv_make, i.inv_model, i.inv_year, i.inv_price
		FROM orders o
		JOIN inventory i ON o.inv_id = i.inv_id
		WHERE o.account_id = ?
		ORDER BY o.order_date DESC, o.order_id DESC`, accountID)
	return orders, err
}

func (s *Store) GetAllOrders(limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Select(&orders, `
		SELECT o.*, a.account_firstname, a.account_lastname, a.account_email,
		       i.inv_make, i.inv_model, i.inv_year, i.inv_price
		FROM orders o
		JOIN account a ON o.account_id = a.account_id
		JOIN inventory i ON o.inv_id = i.inv_id
		ORDER BY o.order_date DESC, o.order_id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	return orders, err
}

func (s *Store) GetTotalOrdersCount() (int, error) {
	var count int
	err := s.DB.Get(&count, `SELECT COUNT(*) FROM orders`)
	return count, err
}

func (s *Store) UpdateOrderStatus(orderID int, status string) error {
	_, err := s.DB.Exec(`UPDATE orders SET order_status = ? WHERE order_id = ?`, status, orderID)
	return err
}
