package client

import (
	"strings"
	"sync"
)

// responseCache lưu payload đã giải mã envelope của các GET thành công
type responseCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	// gen tăng mỗi lần invalidate để bỏ kết quả của request bắt đầu trước đó
	gen uint64
}

func newResponseCache() *responseCache {
	return &responseCache{entries: make(map[string][]byte)}
}

func (c *responseCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *responseCache) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// put chỉ lưu khi chưa có invalidate nào kể từ gen
func (c *responseCache) put(key string, gen uint64, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.gen {
		c.entries[key] = payload
	}
}

// invalidate xóa các key bắt đầu bằng một trong các prefix
func (c *responseCache) invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	for key := range c.entries {
		for _, p := range prefixes {
			if strings.HasPrefix(key, p) {
				delete(c.entries, key)
				break
			}
		}
	}
}

func (c *responseCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.entries = make(map[string][]byte)
}
