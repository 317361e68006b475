package services

import (
	"context"
	"testing"

	"torget-app-io/api/pkg/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// MockCollectionWriter implements CollectionWriter for testing
type MockCollectionWriter struct {
	inserted   map[string][]bson.M
	updated    map[string]bson.M
	insertErr  error
	updateErr  error
	nextInsert string
}

func NewMockCollectionWriter() *MockCollectionWriter {
	return &MockCollectionWriter{
		inserted:   make(map[string][]bson.M),
		updated:    make(map[string]bson.M),
		nextInsert: "inserted-id",
	}
}

func (m *MockCollectionWriter) InsertOne(_ context.Context, collection string, payload bson.M) (string, error) {
	if m.insertErr != nil {
		return "", m.insertErr
	}
	m.inserted[collection] = append(m.inserted[collection], payload)
	return m.nextInsert, nil
}

func (m *MockCollectionWriter) UpdateByID(_ context.Context, collection string, id string, payload bson.M) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated[collection+"/"+id] = payload
	return nil
}

func emailFormConfig(required bool) models.FormConfig {
	return models.FormConfig{
		Title:      "Contact",
		EntityName: "contact",
		Collection: "Contact",
		Fields: []models.FieldConfig{
			{Name: "email", Label: "Email", Type: models.FieldTypeEmail, Required: required},
		},
	}
}

func TestBuildSchemaRejectsDuplicateFieldNames(t *testing.T) {
	config := models.FormConfig{
		EntityName: "broken",
		Fields: []models.FieldConfig{
			{Name: "name", Type: models.FieldTypeText},
			{Name: "name", Type: models.FieldTypeEmail},
		},
	}

	_, err := BuildSchema(config)
	assert.Error(t, err)
}

func TestBuildSchemaRejectsUnknownFieldType(t *testing.T) {
	config := models.FormConfig{
		EntityName: "broken",
		Fields: []models.FieldConfig{
			{Name: "x", Type: "checkbox"},
		},
	}

	_, err := BuildSchema(config)
	assert.Error(t, err)
}

func TestBuildSchemaRejectsSelectWithoutOptions(t *testing.T) {
	config := models.FormConfig{
		EntityName: "broken",
		Fields: []models.FieldConfig{
			{Name: "tier", Type: models.FieldTypeSelect},
		},
	}

	_, err := BuildSchema(config)
	assert.Error(t, err)
}

func TestRequiredEmailFieldValidation(t *testing.T) {
	schema, err := BuildSchema(emailFormConfig(true))
	require.NoError(t, err)

	errs := schema.Validate(map[string]string{"email": ""})
	require.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Field)

	errs = schema.Validate(map[string]string{"email": "a@b.com"})
	assert.Empty(t, errs)

	errs = schema.Validate(map[string]string{"email": "not-an-email"})
	assert.Len(t, errs, 1)
}

func TestOptionalEmailFieldAcceptsEmpty(t *testing.T) {
	schema, err := BuildSchema(emailFormConfig(false))
	require.NoError(t, err)

	assert.Empty(t, schema.Validate(map[string]string{"email": ""}))
	assert.Empty(t, schema.Validate(map[string]string{}))
	assert.Len(t, schema.Validate(map[string]string{"email": "nope"}), 1)
}

func TestNumberFieldMustBePositive(t *testing.T) {
	config := models.FormConfig{
		EntityName: "product",
		Fields: []models.FieldConfig{
			{Name: "price", Type: models.FieldTypeNumber, Required: true},
		},
	}

	schema, err := BuildSchema(config)
	require.NoError(t, err)

	assert.Empty(t, schema.Validate(map[string]string{"price": "49.90"}))
	assert.Len(t, schema.Validate(map[string]string{"price": "0"}), 1)
	assert.Len(t, schema.Validate(map[string]string{"price": "-5"}), 1)
	assert.Len(t, schema.Validate(map[string]string{"price": "abc"}), 1)
}

func TestTelAndUrlFieldValidation(t *testing.T) {
	config := models.FormConfig{
		EntityName: "participant",
		Fields: []models.FieldConfig{
			{Name: "phone", Type: models.FieldTypeTel},
			{Name: "website", Type: models.FieldTypeUrl},
		},
	}

	schema, err := BuildSchema(config)
	require.NoError(t, err)

	assert.Empty(t, schema.Validate(map[string]string{
		"phone":   "+46 70 123 45 67",
		"website": "https://example.com",
	}))
	assert.Len(t, schema.Validate(map[string]string{"phone": "abc"}), 1)
	assert.Len(t, schema.Validate(map[string]string{"website": "not a url"}), 1)
}

func TestSelectFieldChecksOptions(t *testing.T) {
	config := models.FormConfig{
		EntityName: "sponsor",
		Fields: []models.FieldConfig{
			{Name: "tier", Type: models.FieldTypeSelect, Required: true, Options: []string{"gold", "silver"}},
		},
	}

	schema, err := BuildSchema(config)
	require.NoError(t, err)

	assert.Empty(t, schema.Validate(map[string]string{"tier": "gold"}))
	assert.Len(t, schema.Validate(map[string]string{"tier": "platinum"}), 1)
}

func TestFileFieldSkipsValidation(t *testing.T) {
	config := models.FormConfig{
		EntityName: "participant",
		Fields: []models.FieldConfig{
			{Name: "photo", Type: models.FieldTypeFile, Required: true},
		},
	}

	schema, err := BuildSchema(config)
	require.NoError(t, err)

	// File values are upload URLs; required or not, nothing is checked here.
	assert.Empty(t, schema.Validate(map[string]string{}))
	assert.Empty(t, schema.Validate(map[string]string{"photo": "https://cdn.example.com/x.png"}))
}

func TestSubmitInsertsWhenNoMatchID(t *testing.T) {
	writer := NewMockCollectionWriter()
	forms := NewFormService(writer)

	config, err := FormConfigFor("sponsor")
	require.NoError(t, err)

	result, err := forms.Submit(context.Background(), config, map[string]string{
		"name":    "Nordiska Fonden",
		"website": "https://nordiska.example.com",
		"tier":    "gold",
	}, "", nil)
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.Equal(t, "inserted-id", result.EntityId)

	require.Len(t, writer.inserted["Sponsor"], 1)
	payload := writer.inserted["Sponsor"][0]
	assert.Equal(t, "Nordiska Fonden", payload["name"])
	assert.Equal(t, "nordiska-fonden", payload["slug"])
	assert.NotNil(t, payload["created_at"])
}

func TestSubmitUpdatesWhenMatchIDSupplied(t *testing.T) {
	writer := NewMockCollectionWriter()
	forms := NewFormService(writer)

	config, err := FormConfigFor("product")
	require.NoError(t, err)

	result, err := forms.Submit(context.Background(), config, map[string]string{
		"title": "Handwoven basket",
		"price": "249",
	}, "abc123", nil)
	require.NoError(t, err)

	assert.False(t, result.Created)
	assert.Equal(t, "abc123", result.EntityId)

	payload := writer.updated["Product/abc123"]
	require.NotNil(t, payload)
	assert.Equal(t, 249.0, payload["price"])
	assert.Equal(t, "handwoven-basket", payload["slug"])
}

func TestSubmitBlocksOnValidationErrors(t *testing.T) {
	writer := NewMockCollectionWriter()
	forms := NewFormService(writer)

	config, err := FormConfigFor("sponsor")
	require.NoError(t, err)

	_, err = forms.Submit(context.Background(), config, map[string]string{
		"name":    "",
		"website": "not-a-url",
		"tier":    "gold",
	}, "", nil)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
	assert.Empty(t, writer.inserted)
}

func TestSubmitSurfacesPersistenceErrors(t *testing.T) {
	writer := NewMockCollectionWriter()
	writer.insertErr = errors.New("connection reset")
	forms := NewFormService(writer)

	config, err := FormConfigFor("service")
	require.NoError(t, err)

	_, err = forms.Submit(context.Background(), config, map[string]string{
		"title":         "Woodworking class",
		"description":   "Two hour intro class",
		"rate":          "350",
		"contact_email": "teach@example.com",
	}, "", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestSubmitUsesCallerTransform(t *testing.T) {
	writer := NewMockCollectionWriter()
	forms := NewFormService(writer)

	config, err := FormConfigFor("participant")
	require.NoError(t, err)

	transform := func(values map[string]string) (bson.M, error) {
		return bson.M{"display_name": values["name"], "contact": values["email"]}, nil
	}

	_, err = forms.Submit(context.Background(), config, map[string]string{
		"name":  "Eva Berg",
		"email": "eva@example.com",
	}, "", transform)
	require.NoError(t, err)

	payload := writer.inserted["Participant"][0]
	assert.Equal(t, "Eva Berg", payload["display_name"])
	assert.Equal(t, "eva@example.com", payload["contact"])
}

func TestEveryEntityFormConfigBuildsASchema(t *testing.T) {
	for _, entity := range EntityNames() {
		config, err := FormConfigFor(entity)
		require.NoError(t, err)

		schema, err := BuildSchema(config)
		require.NoError(t, err, "entity %s", entity)

		for _, field := range config.Fields {
			rule, ok := schema[field.Name]
			require.True(t, ok, "field %s of %s", field.Name, entity)
			if field.Required && field.Type != models.FieldTypeFile {
				assert.True(t, rule.Required)
			}
		}
	}
}
