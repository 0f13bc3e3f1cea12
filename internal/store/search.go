package store

import (
	"strings"

	"github.com/myrayzsiza/cse-340/internal/models"
)

// SearchFilters holds the optional advanced-search criteria; zero values
// mean "not filtered on".
type SearchFilters struct {
	Make     string
	Model    string
	MinYear  int
	MaxYear  int
	MinPrice float64
	MaxPrice float64
}

func (s *Store) SearchInventory(term string) ([]models.Vehicle, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	var vs []models.Vehicle
	err := s.DB.Select(&vs, `
		SELECT * FROM inventory
		WHERE LOWER(inv_make) LIKE ?
		   OR LOWER(inv_model) LIKE ?
		   OR LOWER(inv_description) LIKE ?
		ORDER BY inv_make, inv_model`,
		pattern, pattern, pattern)
	return vs, err
}

func (s *Store) AdvancedSearch(f SearchFilters) ([]models.Vehicle, error) {
	query := `SELECT * FROM inventory WHERE 1=1`
	var args []interface{}

	if f.Make != "" {
		query += ` AND LOWER(inv_make) LIKE ?`
		args = append(args, "%"+strings.ToLower(f.Make)+"%")
	}
	if f.Model != "" {
		query += ` AND LOWER(inv_model) LIKE ?`
		args = append(args, "%"+strings.ToLower(f.Model)+"%")
	}
	if f.MinYear > 0 && f.MaxYear > 0 {
		query += ` AND inv_year >= ? AND inv_year <= ?`
		args = append(args, f.MinYear, f.MaxYear)
	}
	if f.MinPrice > 0 && f.MaxPrice > 0 {
		query += ` AND inv_price >= ? AND inv_price <= ?`
		args = append(args, f.MinPrice, f.MaxPrice)
	}

	query += ` ORDER BY inv_year DESC, inv_make, inv_model`

	var vs []models.Vehicle
	err := s.DB.Select(&vs, query, args...)
	return vs, err
}

func (s *Store) GetDistinctMakes() ([]string, error) {
	var makes []string
	err := s.DB.Select(&makes, `SELECT DISTINCT inv_make FROM inventory ORDER BY inv_make`)
	return makes, err
}
