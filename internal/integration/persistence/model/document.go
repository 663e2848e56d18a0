// Package model defines database models for persistence layer.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/technest/admin-dashboard/internal/application/adapter"
)

// DocumentModel represents the documents table. Every watched collection
// shares the table; Data holds the JSON body of the document.
type DocumentModel struct {
	Collection string    `gorm:"type:varchar(64);primaryKey"`
	ID         string    `gorm:"type:varchar(128);primaryKey"`
	Data       string    `gorm:"type:text;not null"`
	UpdatedAt  time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the DocumentModel.
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDocument converts a DocumentModel to an adapter Document. Numbers are
// kept as json.Number so that money amounts survive without float rounding.
func (m *DocumentModel) ToDocument() (adapter.Document, error) {
	data := map[string]any{}
	if m.Data != "" {
		dec := json.NewDecoder(bytes.NewReader([]byte(m.Data)))
		dec.UseNumber()
		if err := dec.Decode(&data); err != nil {
			return adapter.Document{}, fmt.Errorf("failed to decode document %s/%s: %w", m.Collection, m.ID, err)
		}
	}
	return adapter.Document{
		Collection: m.Collection,
		ID:         m.ID,
		Data:       data,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}

// FromDocument creates a DocumentModel from an adapter Document.
func FromDocument(doc adapter.Document) (*DocumentModel, error) {
	data := doc.Data
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document %s/%s: %w", doc.Collection, doc.ID, err)
	}
	return &DocumentModel{
		Collection: doc.Collection,
		ID:         doc.ID,
		Data:       string(raw),
		UpdatedAt:  doc.UpdatedAt,
	}, nil
}
