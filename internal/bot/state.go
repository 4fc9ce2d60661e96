package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"renthour-bot/pkg/redis"
)

// Conversation steps of the rental flow.
const (
	StepListingSelection  = "listing_selection"
	StepDurationSelection = "duration_selection"
	StepCustomHours       = "custom_hours"
	StepConfirmation      = "confirmation"
)

// UserState is the in-progress rental kept per chat in Redis.
type UserState struct {
	Step            string  `json:"step"`
	ListingID       string  `json:"listing_id"`
	ListingTitle    string  `json:"listing_title"`
	Hours           float64 `json:"hours"`
	Night           bool    `json:"night"`
	Price           float64 `json:"price"`
	OriginalPrice   float64 `json:"original_price"`
	Savings         float64 `json:"savings"`
	DiscountPercent int     `json:"discount_percent"`
}

type StateStorage struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStateStorage(redis *redis.Client) *StateStorage {
	return &StateStorage{
		redis: redis,
		ttl:   24 * time.Hour,
	}
}

func (s *StateStorage) Save(ctx context.Context, chatID int64, state UserState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := s.redis.Set(ctx, getStateKey(chatID), data, s.ttl); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func (s *StateStorage) Get(ctx context.Context, chatID int64) (UserState, error) {
	data, err := s.redis.Get(ctx, getStateKey(chatID))
	if err != nil {
		return UserState{}, fmt.Errorf("failed to get state: %w", err)
	}

	var state UserState
	if err := json.Unmarshal(data, &state); err != nil {
		return UserState{}, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return state, nil
}

func (s *StateStorage) Clear(ctx context.Context, chatID int64) error {
	if err := s.redis.Del(ctx, getStateKey(chatID)); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

func (s *StateStorage) SetStep(ctx context.Context, chatID int64, step string) error {
	state, err := s.Get(ctx, chatID)
	if err != nil {
		state = UserState{}
	}
	state.Step = step
	return s.Save(ctx, chatID, state)
}

func (s *StateStorage) SetListing(ctx context.Context, chatID int64, listingID, title string) error {
	state, err := s.Get(ctx, chatID)
	if err != nil {
		state = UserState{}
	}
	state.ListingID = listingID
	state.ListingTitle = title
	return s.Save(ctx, chatID, state)
}

// SetQuote stores the resolved price alongside the chosen duration so
// confirmation shows exactly what will be charged.
func (s *StateStorage) SetQuote(ctx context.Context, chatID int64, hours float64, night bool, price, original, savings float64, discountPercent int) error {
	state, err := s.Get(ctx, chatID)
	if err != nil {
		state = UserState{}
	}
	state.Hours = hours
	state.Night = night
	state.Price = price
	state.OriginalPrice = original
	state.Savings = savings
	state.DiscountPercent = discountPercent
	return s.Save(ctx, chatID, state)
}

func getStateKey(chatID int64) string {
	return fmt.Sprintf("state:%d", chatID)
}
