package store

import "database/sql"

type DashboardStats struct {
	TotalAccounts   int
	TotalVehicles   int
	TotalOrders     int
	PendingReviews  int
	OrdersByStatus  map[string]int
	AccountsByType  map[string]int
	TopVehicles     []VehicleOrderCount
}

type VehicleOrderCount struct {
	InvID      int
	Make       string
	Model      string
	OrderCount int
}

func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByStatus: make(map[string]int),
	}

	if err := s.DB.Get(&stats.TotalAccounts, `SELECT COUNT(*) FROM account`); err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if err := s.DB.Get(&stats.TotalVehicles, `SELECT COUNT(*) FROM inventory`); err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if err := s.DB.Get(&stats.TotalOrders, `SELECT COUNT(*) FROM orders`); err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if err := s.DB.Get(&stats.PendingReviews, `SELECT COUNT(*) FROM reviews WHERE is_approved = 0`); err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	rows, err := s.DB.Query(`SELECT order_status, COUNT(*) FROM orders GROUP BY order_status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.OrdersByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats.AccountsByType, err = s.CountAccountsByType()
	if err != nil {
		return nil, err
	}

	topRows, err := s.DB.Query(`
		SELECT i.inv_id, i.inv_make, i.inv_model, COUNT(o.order_id) AS order_count
		FROM inventory i
		LEFT JOIN orders o ON i.inv_id = o.inv_id
		GROUP BY i.inv_id
		ORDER BY order_count DESC
		LIMIT 10`)
	if err != nil {
		return nil, err
	}
	defer topRows.Close()
	for topRows.Next() {
		var vc VehicleOrderCount
		if err := topRows.Scan(&vc.InvID, &vc.Make, &vc.Model, &vc.OrderCount); err != nil {
			return nil, err
		}
		stats.TopVehicles = append(stats.TopVehicles, vc)
	}
	return stats, topRows.Err()
}
