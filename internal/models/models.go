package models

import (
	"database/sql"
	"time"
)

type Account struct {
	ID                int            `db:"account_id" json:"account_id"`
	FirstName         string         `db:"account_firstname" json:"account_firstname"`
	LastName          string         `db:"account_lastname" json:"account_lastname"`
	Email             string         `db:"account_email" json:"account_email"`
	Password          string         `db:"account_password" json:"-"`
	Type              string         `db:"account_type" json:"account_type"` // "Client", "Employee", "Admin"
	ResetToken        sql.NullString `db:"reset_token" json:"-"`
	ResetTokenExpires sql.NullTime   `db:"reset_token_expires" json:"-"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
}

type Classification struct {
	ID   int    `db:"classification_id" json:"classification_id"`
	Name string `db:"classification_name" json:"classification_name"`
}

type Vehicle struct {
	ID               int       `db:"inv_id" json:"inv_id"`
	Make             string    `db:"inv_make" json:"inv_make"`
	Model            string    `db:"inv_model" json:"inv_model"`
	Year             int       `db:"inv_year" json:"inv_year"`
	Description      string    `db:"inv_description" json:"inv_description"`
	Image            string    `db:"inv_image" json:"inv_image"`
	Thumbnail        string    `db:"inv_thumbnail" json:"inv_thumbnail"`
	Price            float64   `db:"inv_price" json:"inv_price"`
	Miles            int       `db:"inv_miles" json:"inv_miles"`
	Color            string    `db:"inv_color" json:"inv_color"`
	ClassificationID int       `db:"classification_id" json:"classification_id"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// CartItem is a cart row joined with the vehicle fields needed for display.
type CartItem struct {
	ID        int       `db:"cart_id" json:"cart_id"`
	AccountID int       `db:"account_id" json:"account_id"`
	InvID     int       `db:"inv_id" json:"inv_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	AddedDate time.Time `db:"added_date" json:"added_date"`

	Make  string  `db:"inv_make" json:"inv_make"`
	Model string  `db:"inv_model" json:"inv_model"`
	Year  int     `db:"inv_year" json:"inv_year"`
	Price float64 `db:"inv_price" json:"inv_price"`
	Image string  `db:"inv_image" json:"inv_image"`
}

type Order struct {
	ID             int       `db:"order_id" json:"order_id"`
	AccountID      int       `db:"account_id" json:"account_id"`
	InvID          int       `db:"inv_id" json:"inv_id"`
	Phone          string    `db:"order_phone" json:"order_phone"`
	Address        string    `db:"order_address" json:"order_address"`
	City           string    `db:"order_city" json:"order_city"`
	State          string    `db:"order_state" json:"order_state"`
	Zip            string    `db:"order_zip" json:"order_zip"`
	PaymentAccount string    `db:"order_payment_account" json:"order_payment_account"`
	Status         string    `db:"order_status" json:"order_status"`
	OrderDate      time.Time `db:"order_date" json:"order_date"`

	Make  string  `db:"inv_make" json:"inv_make"`
	Model string  `db:"inv_model" json:"inv_model"`
	Year  int     `db:"inv_year" json:"inv_year"`
	Price float64 `db:"inv_price" json:"inv_price"`

	// Populated only by the admin listing join.
	AccountFirstName string `db:"account_firstname" json:"account_firstname,omitempty"`
	AccountLastName  string `db:"account_lastname" json:"account_lastname,omitempty"`
	AccountEmail     string `db:"account_email" json:"account_email,omitempty"`
}

type Review struct {
	ID          int       `db:"review_id" json:"review_id"`
	InventoryID int       `db:"inventory_id" json:"inventory_id"`
	AccountID   int       `db:"account_id" json:"account_id"`
	Rating      int       `db:"rating" json:"rating"`
	Text        string    `db:"review_text" json:"review_text"`
	IsApproved  bool      `db:"is_approved" json:"is_approved"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	AccountFirstName string `db:"account_firstname" json:"account_firstname,omitempty"`
	AccountLastName  string `db:"account_lastname" json:"account_lastname,omitempty"`
	Make             string `db:"inv_make" json:"inv_make,omitempty"`
	Model            string `db:"inv_model" json:"inv_model,omitempty"`
}

type Role struct {
	ID   int    `db:"role_id" json:"role_id"`
	Name string `db:"role_name" json:"role_name"`
}

type Profile struct {
	ID        int            `db:"profile_id" json:"profile_id"`
	AccountID int            `db:"account_id" json:"account_id"`
	Bio       sql.NullString `db:"bio" json:"bio"`
	Phone     sql.NullString `db:"phone_number" json:"phone_number"`
	Address   sql.NullString `db:"address" json:"address"`
	City      sql.NullString `db:"city" json:"city"`
	State     sql.NullString `db:"state" json:"state"`
	Zip       sql.NullString `db:"zip_code" json:"zip_code"`
	Picture   sql.NullString `db:"profile_picture" json:"profile_picture"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

type ActivityEntry struct {
	ID          int       `db:"activity_id" json:"activity_id"`
	AccountID   int       `db:"account_id" json:"account_id"`
	ActionType  string    `db:"action_type" json:"action_type"`
	Description string    `db:"description" json:"description"`
	IPAddress   string    `db:"ip_address" json:"ip_address"`
	UserAgent   string    `db:"user_agent" json:"user_agent"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	AccountFirstName string `db:"account_firstname" json:"account_firstname,omitempty"`
	AccountLastName  string `db:"account_lastname" json:"account_lastname,omitempty"`
	AccountEmail     string `db:"account_email" json:"account_email,omitempty"`
}

// PendingOrder is the session-held checkout snapshot between the shipping
// form and confirmation. Never persisted; its cart lines and total are
// authoritative at confirmation time, not a fresh cart read.
type PendingOrder struct {
	AccountID      int
	Items          []CartItem
	Phone          string
	Address        string
	City           string
	State          string
	Zip            string
	PaymentAccount string
	Total          float64
	CreatedAt      time.Time
}
