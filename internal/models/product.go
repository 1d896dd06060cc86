package models

import "time"

// Product represents a product in the catalogue.
//
// ID and Version belong to the storage engine. They are echoed back to
// clients as "_id" and "__v" but nothing in the service reads them.
type Product struct {
	ID          string    `json:"_id"`
	ProductID   string    `json:"productId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Version     int       `json:"__v"`
}

// ProductInput is the client-writable part of a new product.
type ProductInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ProductUpdate carries the fields of an update request. A nil field keeps
// the stored value.
type ProductUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Apply copies the non-nil fields of u onto p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
}
