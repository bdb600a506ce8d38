package redis

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"testgenz-result-service/internal/domain"
)

// CatalogLoader fetches quiz catalog entries from a backing store.
type CatalogLoader interface {
	LoadQuiz(ctx context.Context, slug string) (domain.Quiz, error)
}

// Catalog caches catalog entries in Redis (hash per slug) and falls back to a
// loader on cache miss. Entries are stored as:
//
//	HSET quiz:catalog:{slug} id {quizID} type {scoringType} count {questionCount}
type Catalog struct {
	client *redis.Client
	loader CatalogLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCatalog(client *redis.Client, loader CatalogLoader, ttl time.Duration) *Catalog {
	return &Catalog{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *Catalog) ResolveQuiz(ctx context.Context, slug string) (domain.Quiz, error) {
	key := c.key(slug)

	fields, err := c.client.HGetAll(ctx, key).Result()
	if err == nil && len(fields) > 0 {
		return quizFromCache(slug, fields), nil
	}

	result, err, _ := c.sf.Do(slug, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		fields, err := c.client.HGetAll(ctx, key).Result()
		if err == nil && len(fields) > 0 {
			return quizFromCache(slug, fields), nil
		}

		quiz, err := c.loader.LoadQuiz(ctx, slug)
		if err != nil {
			return domain.Quiz{}, err
		}

		ttl := c.ttlWithJitter()
		pipe := c.client.Pipeline()
		pipe.HSet(ctx, key,
			"id", quiz.ID,
			"type", string(quiz.ScoringType),
			"count", quiz.QuestionCount,
		)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

func (c *Catalog) key(slug string) string {
	return "quiz:catalog:" + slug
}

func quizFromCache(slug string, fields map[string]string) domain.Quiz {
	count := 0
	if raw, ok := fields["count"]; ok {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			count = n
		}
	}
	return domain.Quiz{
		ID:            fields["id"],
		Slug:          slug,
		ScoringType:   domain.ScoringType(fields["type"]),
		QuestionCount: count,
	}
}

func (c *Catalog) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
