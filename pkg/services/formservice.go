package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"torget-app-io/api/internal/common"
	"torget-app-io/api/pkg/models"

	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,}$`)

// FieldRule is the validation rule generated for one form field.
type FieldRule struct {
	Type     models.FieldType
	Tag      string
	Required bool
	Options  []string
	Skip     bool
}

// ValidationSchema maps field names to their generated rules.
type ValidationSchema map[string]FieldRule

// FieldError annotates one offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors blocks submission; every offending field is listed.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fe.Field)
	}
	return "validation failed for: " + strings.Join(fields, ", ")
}

// BuildSchema derives the validation schema from a form config. Field names
// must be unique and every field type must be a known variant; violations are
// configuration errors, not user errors.
func BuildSchema(config models.FormConfig) (ValidationSchema, error) {
	schema := make(ValidationSchema, len(config.Fields))

	for _, field := range config.Fields {
		if common.IsEmptyString(field.Name) {
			return nil, errors.Errorf("form %q has a field with an empty name", config.EntityName)
		}
		if _, exists := schema[field.Name]; exists {
			return nil, errors.Errorf("form %q declares field %q twice", config.EntityName, field.Name)
		}

		rule := FieldRule{Type: field.Type, Required: field.Required, Options: field.Options}

		switch field.Type {
		case models.FieldTypeText, models.FieldTypeTextarea:
			rule.Tag = ""
		case models.FieldTypeEmail:
			rule.Tag = "email"
		case models.FieldTypeUrl:
			rule.Tag = "url"
		case models.FieldTypeNumber:
			rule.Tag = "numeric"
		case models.FieldTypeTel:
			rule.Tag = "" // checked against phonePattern
		case models.FieldTypeSelect:
			if len(field.Options) == 0 {
				return nil, errors.Errorf("select field %q has no options", field.Name)
			}
		case models.FieldTypeFile:
			// File values are upload URLs produced by the media collaborator,
			// not user-typed text.
			rule.Skip = true
		default:
			return nil, errors.Errorf("field %q has unknown type %q", field.Name, field.Type)
		}

		schema[field.Name] = rule
	}

	return schema, nil
}

// Validate checks the submitted values against the schema. A nil result means
// the submission may proceed.
func (s ValidationSchema) Validate(values map[string]string) ValidationErrors {
	var errs ValidationErrors

	for name, rule := range s {
		if rule.Skip {
			continue
		}

		value := strings.TrimSpace(values[name])

		if value == "" {
			if rule.Required {
				errs = append(errs, FieldError{Field: name, Message: "this field is required"})
			}
			continue
		}

		if rule.Tag != "" {
			if err := common.Validate.Var(value, rule.Tag); err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("must be a valid %s", rule.Tag)})
				continue
			}
		}

		switch rule.Type {
		case models.FieldTypeNumber:
			n, err := strconv.ParseFloat(value, 64)
			if err != nil || n <= 0 {
				errs = append(errs, FieldError{Field: name, Message: "must be a positive number"})
			}
		case models.FieldTypeTel:
			if !phonePattern.MatchString(value) {
				errs = append(errs, FieldError{Field: name, Message: "must be a valid phone number"})
			}
		case models.FieldTypeSelect:
			if !containsOption(rule.Options, value) {
				errs = append(errs, FieldError{Field: name, Message: "must be one of the listed options"})
			}
		}
	}

	return errs
}

func containsOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}

// CollectionWriter is the persistence collaborator of the form engine. Each
// submit is a single insert or update against one named collection.
type CollectionWriter interface {
	InsertOne(ctx context.Context, collection string, payload bson.M) (string, error)
	UpdateByID(ctx context.Context, collection string, id string, payload bson.M) error
}

// MongoCollectionWriter writes form payloads to MongoDB.
type MongoCollectionWriter struct {
	db *mongo.Database
}

func NewMongoCollectionWriter(db *mongo.Database) *MongoCollectionWriter {
	return &MongoCollectionWriter{db: db}
}

func (w *MongoCollectionWriter) InsertOne(ctx context.Context, collection string, payload bson.M) (string, error) {
	res, err := w.db.Collection(collection).InsertOne(ctx, payload)
	if err != nil {
		return "", err
	}

	if insertedID, ok := res.InsertedID.(primitive.ObjectID); ok {
		return insertedID.Hex(), nil
	}
	return "", fmt.Errorf("failed to get inserted ID")
}

func (w *MongoCollectionWriter) UpdateByID(ctx context.Context, collection string, id string, payload bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid entity id %q", id)
	}

	res, err := w.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": payload})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("entity %q not found", id)
	}
	return nil
}

// FromForm transforms validated form values into the entity payload. When nil,
// the default transform is used.
type FromForm func(values map[string]string) (bson.M, error)

// SubmitResult reports what a submit did.
type SubmitResult struct {
	EntityId string `json:"entityId"`
	Created  bool   `json:"created"`
}

// FormService turns declarative form configs into validated insert-or-update
// pipelines, without per-entity form code.
type FormService struct {
	writer CollectionWriter
}

func NewFormService(writer CollectionWriter) *FormService {
	return &FormService{writer: writer}
}

// Submit validates values against the config's schema, transforms them into an
// entity payload and persists it. A supplied matchID updates the existing
// entity; an empty matchID inserts a new one. Validation failures return
// ValidationErrors; persistence errors are surfaced verbatim for retry.
func (fs *FormService) Submit(ctx context.Context, config models.FormConfig, values map[string]string, matchID string, transform FromForm) (*SubmitResult, error) {
	schema, err := BuildSchema(config)
	if err != nil {
		return nil, err
	}

	if verrs := schema.Validate(values); len(verrs) > 0 {
		return nil, verrs
	}

	if transform == nil {
		transform = fs.defaultTransform(config)
	}

	payload, err := transform(values)
	if err != nil {
		return nil, err
	}
	payload["modified_at"] = time.Now()

	if matchID == "" {
		payload["created_at"] = time.Now()
		id, err := fs.writer.InsertOne(ctx, config.Collection, payload)
		if err != nil {
			zlog.Error().Err(err).Str("entity", config.EntityName).Msg("form insert failed")
			return nil, err
		}
		return &SubmitResult{EntityId: id, Created: true}, nil
	}

	if err := fs.writer.UpdateByID(ctx, config.Collection, matchID, payload); err != nil {
		zlog.Error().Err(err).Str("entity", config.EntityName).Str("id", matchID).Msg("form update failed")
		return nil, err
	}
	return &SubmitResult{EntityId: matchID, Created: false}, nil
}

// defaultTransform copies known fields into the payload, converting number
// fields and deriving a slug from the name or title field when present.
func (fs *FormService) defaultTransform(config models.FormConfig) FromForm {
	return func(values map[string]string) (bson.M, error) {
		payload := bson.M{}

		for _, field := range config.Fields {
			value, ok := values[field.Name]
			if !ok || strings.TrimSpace(value) == "" {
				continue
			}

			if field.Type == models.FieldTypeNumber {
				n, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return nil, fmt.Errorf("field %q is not a number", field.Name)
				}
				payload[field.Name] = n
				continue
			}

			payload[field.Name] = value
		}

		for _, nameField := range []string{"name", "title"} {
			if v, ok := payload[nameField].(string); ok {
				payload["slug"] = slug.Make(v)
				break
			}
		}

		return payload, nil
	}
}
