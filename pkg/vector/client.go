package vector

import (
	"context"
	"fmt"
	"strings"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate/entities/models"
	"go.uber.org/zap"

	"github.com/penpalsapp/backend/pkg/logger"
)

// ClassName is the Weaviate class holding one entry per classroom with a
// non-empty interest set.
const ClassName = "ClassroomInterest"

// NewClient creates a Weaviate client from a plain URL such as
// "http://localhost:8081".
func NewClient(rawURL string) (*weaviate.Client, error) {
	cfg := weaviate.Config{
		Host:   rawURL,
		Scheme: "http",
	}
	if strings.HasPrefix(rawURL, "https://") {
		cfg.Scheme = "https"
		cfg.Host = strings.TrimPrefix(rawURL, "https://")
	} else if strings.HasPrefix(rawURL, "http://") {
		cfg.Host = strings.TrimPrefix(rawURL, "http://")
	}

	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}
	return client, nil
}

// classroomInterestSchema defines the index class. Only the interests text is
// vectorized; the rest is metadata used to re-hydrate hits.
func classroomInterestSchema() *models.Class {
	skip := map[string]interface{}{
		"text2vec-transformers": map[string]interface{}{"skip": true},
	}

	return &models.Class{
		Class:       ClassName,
		Description: "Classroom interest text for semantic penpal matching",
		Vectorizer:  "text2vec-transformers",
		ModuleConfig: map[string]interface{}{
			"text2vec-transformers": map[string]interface{}{
				"vectorizeClassName": false,
			},
		},
		Properties: []*models.Property{
			{
				Name:        "interests",
				DataType:    []string{"text"},
				Description: "Space-joined interest tags",
			},
			{
				Name:         "entryKey",
				DataType:     []string{"text"},
				Description:  "Stable key, classroom_<id>",
				Tokenization: "field",
				ModuleConfig: skip,
			},
			{
				Name:         "classroomId",
				DataType:     []string{"int"},
				ModuleConfig: skip,
			},
			{
				Name:         "classroomName",
				DataType:     []string{"text"},
				Tokenization: "field",
				ModuleConfig: skip,
			},
			{
				Name:         "location",
				DataType:     []string{"text"},
				Tokenization: "field",
				ModuleConfig: skip,
			},
		},
	}
}

// EnsureSchema creates the ClassroomInterest class if it does not exist yet.
func EnsureSchema(ctx context.Context, client *weaviate.Client) error {
	exists, err := client.Schema().ClassExistenceChecker().WithClassName(ClassName).Do(ctx)
	if err != nil {
		return fmt.Errorf("check %s class: %w", ClassName, err)
	}
	if exists {
		return nil
	}

	if err := client.Schema().ClassCreator().WithClass(classroomInterestSchema()).Do(ctx); err != nil {
		return fmt.Errorf("create %s class: %w", ClassName, err)
	}
	logger.Get().Info("created weaviate class", zap.String("class", ClassName))
	return nil
}
