// Package store persists enriched articles to MongoDB. It is a thin
// consumer of pipeline output; ordering and dedup guarantees come from
// the core, the unique link index only guards cross-run duplicates.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agenthands/newsbrief/internal/core/model"
)

const articlesCollection = "articles"

type ArticleStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

type articleDoc struct {
	model.EnrichedArticle `bson:",inline"`

	RunID    string    `bson:"run_id"`
	StoredAt time.Time `bson:"stored_at"`
}

// NewArticleStore connects and ensures the unique index on link.
func NewArticleStore(ctx context.Context, uri, database string) (*ArticleStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	col := client.Database(database).Collection(articlesCollection)
	_, err = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "link", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create link index: %w", err)
	}

	return &ArticleStore{client: client, col: col}, nil
}

// SaveAll upserts each article by link so a re-run refreshes scores
// and summaries instead of erroring on the unique index.
func (s *ArticleStore) SaveAll(ctx context.Context, runID string, articles []model.EnrichedArticle) error {
	now := time.Now().UTC()
	for _, article := range articles {
		doc := articleDoc{
			EnrichedArticle: article,
			RunID:           runID,
			StoredAt:        now,
		}
		_, err := s.col.ReplaceOne(ctx,
			bson.D{{Key: "link", Value: article.Link}},
			doc,
			options.Replace().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("upsert article %s: %w", article.Link, err)
		}
	}
	return nil
}

// List returns stored articles ordered by score descending.
func (s *ArticleStore) List(ctx context.Context, limit int) ([]model.EnrichedArticle, error) {
	opts := options.Find().SetSort(bson.D{{Key: "score", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}
	defer cursor.Close(ctx)

	var articles []model.EnrichedArticle
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}
	return articles, nil
}

func (s *ArticleStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
