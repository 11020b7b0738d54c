package search

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"

	"github.com/penpalsapp/backend/pkg/vector"
)

// WeaviateStore implements Store against a Weaviate instance.
type WeaviateStore struct {
	client *weaviate.Client
}

// NewWeaviateStore creates a new WeaviateStore
func NewWeaviateStore(client *weaviate.Client) *WeaviateStore {
	return &WeaviateStore{client: client}
}

// objectID maps an entry key to a deterministic Weaviate object UUID, so the
// same classroom always lands on the same object.
func objectID(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

// Upsert replaces the entry for the key. Weaviate offers no update that
// re-vectorizes reliably across modules, so this is delete-then-insert.
func (s *WeaviateStore) Upsert(ctx context.Context, entry Entry) error {
	if err := s.Delete(ctx, entry.Key); err != nil {
		return err
	}

	_, err := s.client.Data().Creator().
		WithClassName(vector.ClassName).
		WithID(objectID(entry.Key)).
		WithProperties(map[string]interface{}{
			"entryKey":      entry.Key,
			"interests":     entry.Interests,
			"classroomId":   int64(entry.ClassroomID),
			"classroomName": entry.ClassroomName,
			"location":      entry.Location,
		}).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", entry.Key, err)
	}
	return nil
}

// Delete removes the entry for the key. Deleting a key with no entry is not
// an error.
func (s *WeaviateStore) Delete(ctx context.Context, key string) error {
	where := filters.Where().
		WithPath([]string{"entryKey"}).
		WithOperator(filters.Equal).
		WithValueString(key)

	_, err := s.client.Batch().ObjectsBatchDeleter().
		WithClassName(vector.ClassName).
		WithOutput("minimal").
		WithWhere(where).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Query runs a nearText search and returns hits in Weaviate's native rank
// order, best certainty first.
func (s *WeaviateStore) Query(ctx context.Context, text string, limit int) ([]Hit, error) {
	nearText := s.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{text})

	fields := []graphql.Field{
		{Name: "entryKey"},
		{Name: "classroomId"},
		{Name: "_additional { certainty }"},
	}

	result, err := s.client.GraphQL().Get().
		WithClassName(vector.ClassName).
		WithFields(fields...).
		WithNearText(nearText).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("query: %s", result.Errors[0].Message)
	}

	data, ok := result.Data["Get"].(map[string]interface{})
	if !ok {
		return nil, nil
	}
	objects, ok := data[vector.ClassName].([]interface{})
	if !ok {
		return nil, nil
	}

	hits := make([]Hit, 0, len(objects))
	for _, obj := range objects {
		m, ok := obj.(map[string]interface{})
		if !ok {
			continue
		}

		hit := Hit{}
		if key, ok := m["entryKey"].(string); ok {
			hit.Key = key
		}
		if id, ok := m["classroomId"].(float64); ok {
			hit.ClassroomID = uint(id)
		}
		if additional, ok := m["_additional"].(map[string]interface{}); ok {
			if certainty, ok := additional["certainty"].(float64); ok {
				hit.Similarity = certainty
			}
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// DeleteAll wipes every entry in the class. Only the rebuild path uses this.
func (s *WeaviateStore) DeleteAll(ctx context.Context) error {
	where := filters.Where().
		WithPath([]string{"entryKey"}).
		WithOperator(filters.Like).
		WithValueString("*")

	_, err := s.client.Batch().ObjectsBatchDeleter().
		WithClassName(vector.ClassName).
		WithOutput("minimal").
		WithWhere(where).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("delete all: %w", err)
	}
	return nil
}
