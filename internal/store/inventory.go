package store

import (
	"database/sql"
	"errors"

	"github.com/myrayzsiza/cse-340/internal/models"
)

func (s *Store) GetClassifications() ([]models.Classification, error) {
	var cs []models.Classification
	err := s.DB.Select(&cs, `SELECT * FROM classification ORDER BY classification_name`)
	return cs, err
}

func (s *Store) GetClassificationByID(id int) (*models.Classification, error) {
	var c models.Classification
	err := s.DB.Get(&c, `SELECT * FROM classification WHERE classification_id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (s *Store) AddClassification(name string) (int, error) {
	res, err := s.DB.Exec(`INSERT INTO classification (classification_name) VALUES (?)`, name)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (s *Store) GetAllVehicles() ([]models.Vehicle, error) {
	var vs []models.Vehicle
	err := s.DB.Select(&vs, `SELECT * FROM inventory ORDER BY created_at DESC`)
	return vs, err
}

func (s *Store) GetVehiclesByClassification(classificationID int) ([]models.Vehicle, error) {
	var vs []models.Vehicle
	err := s.DB.Select(&vs, `
		SELECT * FROM inventory
		WHERE classification_id = ?
		ORDER BY inv_make, inv_model`, classificationID)
	return vs, err
}

func (s *Store) GetVehicleByID(invID int) (*models.Vehicle, error) {
	var v models.Vehicle
	err := s.DB.Get(&v, `SELECT * FROM inventory WHERE inv_id = ?`, invID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (s *Store) AddVehicle(v *models.Vehicle) (int, error) {
	res, err := s.DB.Exec(`
		INSERT INTO inventory (inv_make, inv_model, inv_year, inv_description, inv_image, inv_thumbnail, inv_price, inv_miles, inv_color, classification_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.Make, v.Model, v.Year, v.Description, v.Image, v.Thumbnail, v.Price, v.Miles, v.Color, v.ClassificationID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (s *Store) UpdateVehicle(v *models.Vehicle) error {
	_, err := s.DB.Exec(`
		UPDATE inventory
		SET inv_make = ?, inv_model = ?, inv_year = ?, inv_description = ?, inv_price = ?, inv_miles = ?, inv_color = ?, classification_id = ?
		WHERE inv_id = ?`,
		v.Make, v.Model, v.Year, v.Description, v.Price, v.Miles, v.Color, v.ClassificationID, v.ID)
	return err
}

func (s *Store) UpdateVehicleImages(invID int, image, thumbnail string) error {
	_, err := s.DB.Exec(`UPDATE inventory SET inv_image = ?, inv_thumbnail = ? WHERE inv_id = ?`,
		image, thumbnail, invID)
	return err
}

func (s *Store) DeleteVehicle(invID int) error {
	_, err := s.DB.Exec(`DELETE FROM inventory WHERE inv_id = ?`, invID)
	return err
}
