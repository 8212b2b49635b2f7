package services

import (
	"context"
	"time"

	"leasedesk/services/listing"
)

const lastFiltersTTL = 30 * time.Minute

// ListStateStore ghi nhớ bộ lọc gần nhất của từng session cho từng danh sách
type ListStateStore struct {
	cache Cache
}

func NewListStateStore(cache Cache) *ListStateStore {
	return &ListStateStore{cache: cache}
}

func lastFiltersKey(session, list string) string {
	return "last_filters:" + list + ":" + session
}

// Advance so sánh q với bộ lọc lần trước của session: bộ lọc đổi thì về trang 0.
// Lỗi cache không chặn request.
func (s *ListStateStore) Advance(ctx context.Context, session, list string, q listing.Query) listing.Query {
	if session == "" {
		return q
	}
	key := lastFiltersKey(session, list)
	var state listing.State
	found, err := s.cache.Get(ctx, key, &state)
	if err != nil || !found {
		state = listing.State{Signature: q.Signature()}
	}
	q = state.Advance(q)
	_ = s.cache.Set(ctx, key, state, lastFiltersTTL)
	return q
}

// Clear xóa bộ lọc đã lưu
func (s *ListStateStore) Clear(ctx context.Context, session, list string) error {
	return s.cache.Delete(ctx, lastFiltersKey(session, list))
}
