package services

import (
	"torget-app-io/api/pkg/models"

	"github.com/pkg/errors"
)

// Admin form configs, one per managed entity type. Defined once at load and
// never mutated; the form engine derives both validation and persistence from
// them.
var entityForms = map[string]models.FormConfig{
	"participant": {
		Title:      "Participant",
		EntityName: "participant",
		Collection: "Participant",
		Bucket:     "participants",
		Fields: []models.FieldConfig{
			{Name: "name", Label: "Name", Type: models.FieldTypeText, Required: true},
			{Name: "email", Label: "Email", Type: models.FieldTypeEmail, Required: true},
			{Name: "phone", Label: "Phone", Type: models.FieldTypeTel, Required: false},
			{Name: "bio", Label: "Biography", Type: models.FieldTypeTextarea, Required: false},
			{Name: "website", Label: "Website", Type: models.FieldTypeUrl, Required: false},
			{Name: "photo", Label: "Photo", Type: models.FieldTypeFile, Required: false},
		},
	},
	"project": {
		Title:      "Project",
		EntityName: "project",
		Collection: "Project",
		Bucket:     "projects",
		Fields: []models.FieldConfig{
			{Name: "title", Label: "Title", Type: models.FieldTypeText, Required: true},
			{Name: "description", Label: "Description", Type: models.FieldTypeTextarea, Required: true},
			{Name: "category", Label: "Category", Type: models.FieldTypeSelect, Required: true,
				Options: []string{"art", "design", "craft", "technology"}},
			{Name: "image", Label: "Image", Type: models.FieldTypeFile, Required: false},
		},
	},
	"sponsor": {
		Title:      "Sponsor",
		EntityName: "sponsor",
		Collection: "Sponsor",
		Bucket:     "sponsors",
		Fields: []models.FieldConfig{
			{Name: "name", Label: "Name", Type: models.FieldTypeText, Required: true},
			{Name: "website", Label: "Website", Type: models.FieldTypeUrl, Required: true},
			{Name: "tier", Label: "Tier", Type: models.FieldTypeSelect, Required: true,
				Options: []string{"gold", "silver", "bronze"}},
			{Name: "logo", Label: "Logo", Type: models.FieldTypeFile, Required: false},
		},
	},
	"product": {
		Title:      "Product",
		EntityName: "product",
		Collection: "Product",
		Bucket:     "products",
		Fields: []models.FieldConfig{
			{Name: "title", Label: "Title", Type: models.FieldTypeText, Required: true},
			{Name: "description", Label: "Description", Type: models.FieldTypeTextarea, Required: false},
			{Name: "price", Label: "Price", Type: models.FieldTypeNumber, Required: true},
			{Name: "image", Label: "Image", Type: models.FieldTypeFile, Required: false},
		},
	},
	"auction": {
		Title:      "Auction",
		EntityName: "auction",
		Collection: "Auction",
		Bucket:     "auctions",
		Fields: []models.FieldConfig{
			{Name: "title", Label: "Title", Type: models.FieldTypeText, Required: true},
			{Name: "description", Label: "Description", Type: models.FieldTypeTextarea, Required: false},
			{Name: "starting_bid", Label: "Starting bid", Type: models.FieldTypeNumber, Required: true},
			{Name: "image", Label: "Image", Type: models.FieldTypeFile, Required: false},
		},
	},
	"service": {
		Title:      "Service",
		EntityName: "service",
		Collection: "Service",
		Fields: []models.FieldConfig{
			{Name: "title", Label: "Title", Type: models.FieldTypeText, Required: true},
			{Name: "description", Label: "Description", Type: models.FieldTypeTextarea, Required: true},
			{Name: "rate", Label: "Hourly rate", Type: models.FieldTypeNumber, Required: true},
			{Name: "contact_email", Label: "Contact email", Type: models.FieldTypeEmail, Required: true},
		},
	},
}

// FormConfigFor returns the declarative config for the entity type.
func FormConfigFor(entity string) (models.FormConfig, error) {
	config, ok := entityForms[entity]
	if !ok {
		return models.FormConfig{}, errors.Errorf("no form config for entity %q", entity)
	}
	return config, nil
}

// EntityNames lists the configured entity types.
func EntityNames() []string {
	names := make([]string, 0, len(entityForms))
	for name := range entityForms {
		names = append(names, name)
	}
	return names
}
