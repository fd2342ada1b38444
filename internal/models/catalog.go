package models

import (
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Category struct {
	BaseModel
	Name        string    `json:"name"`
	Slug        string    `gorm:"uniqueIndex" json:"slug"`
	Description string    `json:"description"`
	Products    []Product `json:"products,omitempty"`
}

// BeforeCreate derives the slug from the name when none is provided.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if err := c.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
	return nil
}

type Brand struct {
	BaseModel
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Logo        string    `json:"logo"`
	Products    []Product `json:"products,omitempty"`
}
