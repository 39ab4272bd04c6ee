package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"

	"discussion-service/internal/entity"
	"discussion-service/internal/repository"
)

const discussionListCacheKey = "discussions:all"

// DiscussionService orchestrates discussion records together with their
// hashtag associations and optional image reference.
type DiscussionService struct {
	discussionRepo repository.DiscussionRepository
	hashtagRepo    repository.HashtagRepository
	userRepo       repository.UserRepository
	kafkaWriter    *kafka.Writer
	rdb            *redis.Client
}

func NewDiscussionService(discussionRepo repository.DiscussionRepository, hashtagRepo repository.HashtagRepository, userRepo repository.UserRepository, kafkaWriter *kafka.Writer, rdb *redis.Client) *DiscussionService {
	return &DiscussionService{
		discussionRepo: discussionRepo,
		hashtagRepo:    hashtagRepo,
		userRepo:       userRepo,
		kafkaWriter:    kafkaWriter,
		rdb:            rdb,
	}
}

// CreateDiscussion inserts the discussion, ensures every hashtag exists and
// links them, all before the response is sent. The hashtag upserts run as
// concurrent pool operations; the discussion row and its links commit in one
// transaction afterwards, so a failure leaves no partial record behind.
func (s *DiscussionService) CreateDiscussion(ctx context.Context, userID int, text, hashtagsRaw, image string) (*entity.Discussion, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrValidation
	}

	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrValidation
		}
		logger.Error().Err(err).Msgf("Error checking user %d", userID)
		return nil, ErrStorage
	}

	hashtagIDs, err := s.upsertHashtags(ctx, NormalizeHashtags(hashtagsRaw))
	if err != nil {
		return nil, err
	}

	discussion := &entity.Discussion{
		UserID: userID,
		Text:   text,
		Image:  image,
	}

	createdDiscussion, err := s.discussionRepo.CreateDiscussion(ctx, discussion, hashtagIDs)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating discussion")
		return nil, ErrStorage
	}

	s.invalidateListCache(ctx)

	if err := s.publishDiscussionEvent(ctx, createdDiscussion, "created"); err != nil {
		logger.Error().Err(err).Msg("Error publishing discussion event")
	}

	return createdDiscussion, nil
}

// UpdateDiscussion rewrites the text and replaces the hashtag associations
// with the new tag list.
func (s *DiscussionService) UpdateDiscussion(ctx context.Context, id int, text, hashtagsRaw string) (*entity.Discussion, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrValidation
	}

	hashtagIDs, err := s.upsertHashtags(ctx, NormalizeHashtags(hashtagsRaw))
	if err != nil {
		return nil, err
	}

	updatedDiscussion, err := s.discussionRepo.UpdateDiscussion(ctx, id, text, hashtagIDs)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msgf("Error updating discussion %d", id)
		return nil, ErrStorage
	}

	s.invalidateListCache(ctx)

	if err := s.publishDiscussionEvent(ctx, updatedDiscussion, "updated"); err != nil {
		logger.Error().Err(err).Msg("Error publishing discussion event")
	}

	return updatedDiscussion, nil
}

func (s *DiscussionService) DeleteDiscussion(ctx context.Context, id int) (*entity.Discussion, error) {
	deletedDiscussion, err := s.discussionRepo.DeleteDiscussion(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Msgf("Error deleting discussion %d", id)
		return nil, ErrStorage
	}

	s.invalidateListCache(ctx)

	if err := s.publishDiscussionEvent(ctx, deletedDiscussion, "deleted"); err != nil {
		logger.Error().Err(err).Msg("Error publishing discussion event")
	}

	return deletedDiscussion, nil
}

func (s *DiscussionService) GetDiscussions(ctx context.Context) ([]*entity.Discussion, error) {
	if cached := s.readListCache(ctx); cached != nil {
		return cached, nil
	}

	discussions, err := s.discussionRepo.GetDiscussions(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing discussions")
		return nil, ErrStorage
	}

	s.writeListCache(ctx, discussions)
	return discussions, nil
}

// upsertHashtags resolves each tag name to its durable id. The upserts are
// independent idempotent inserts, so they fan out concurrently on the
// connection pool and all results are collected before returning.
func (s *DiscussionService) upsertHashtags(ctx context.Context, tags []string) ([]int, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	resultCh := make(chan struct {
		Index int
		ID    int
		Error error
	}, len(tags))

	for i, tag := range tags {
		go func(i int, tag string) {
			id, err := s.hashtagRepo.UpsertHashtag(ctx, tag)
			resultCh <- struct {
				Index int
				ID    int
				Error error
			}{Index: i, ID: id, Error: err}
		}(i, tag)
	}

	hashtagIDs := make([]int, len(tags))
	for range tags {
		result := <-resultCh
		if result.Error != nil {
			logger.Error().Err(result.Error).Msgf("Error upserting hashtag %q", tags[result.Index])
			return nil, ErrStorage
		}
		hashtagIDs[result.Index] = result.ID
	}

	return hashtagIDs, nil
}

func (s *DiscussionService) publishDiscussionEvent(ctx context.Context, discussion *entity.Discussion, event string) error {
	// if env is set to test, skip publishing
	if os.Getenv("ENV") == "test" {
		return nil
	}

	discussionJSON, err := json.Marshal(discussion)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("discussion-%s-%d", event, discussion.ID)),
		Value: discussionJSON,
	}

	return s.kafkaWriter.WriteMessages(ctx, msg)
}

func (s *DiscussionService) readListCache(ctx context.Context) []*entity.Discussion {
	if os.Getenv("ENV") == "test" {
		return nil
	}

	cached, err := s.rdb.Get(ctx, discussionListCacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msg("Error reading discussion list cache")
		}
		return nil
	}

	var discussions []*entity.Discussion
	if err := json.Unmarshal([]byte(cached), &discussions); err != nil {
		logger.Error().Err(err).Msg("Error unmarshalling discussion list cache")
		return nil
	}

	return discussions
}

func (s *DiscussionService) writeListCache(ctx context.Context, discussions []*entity.Discussion) {
	if os.Getenv("ENV") == "test" {
		return
	}

	discussionsJSON, err := json.Marshal(discussions)
	if err != nil {
		return
	}

	if err := s.rdb.Set(ctx, discussionListCacheKey, discussionsJSON, 1*time.Minute).Err(); err != nil {
		logger.Error().Err(err).Msg("Error writing discussion list cache")
	}
}

func (s *DiscussionService) invalidateListCache(ctx context.Context) {
	if os.Getenv("ENV") == "test" {
		return
	}

	if err := s.rdb.Del(ctx, discussionListCacheKey).Err(); err != nil {
		logger.Error().Err(err).Msg("Error invalidating discussion list cache")
	}
}
