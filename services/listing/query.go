package listing

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ParseQuery đọc query string: search, sort=field,-field2, page, limit
// và các facet dạng status=active,draft
func ParseQuery(values url.Values, facets ...string) Query {
	q := Query{
		Search: strings.TrimSpace(values.Get("search")),
		In:     map[string][]string{},
	}
	if q.Search == "" {
		q.Search = strings.TrimSpace(values.Get("name"))
	}

	for _, raw := range strings.Split(values.Get("sort"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		key := SortKey{Field: raw}
		if strings.HasPrefix(raw, "-") {
			key = SortKey{Field: raw[1:], Desc: true}
		}
		q.Sort = append(q.Sort, key)
	}
	if order := values.Get("order"); len(q.Sort) == 1 && strings.EqualFold(order, "desc") {
		q.Sort[0].Desc = true
	}

	if p, err := strconv.Atoi(values.Get("page")); err == nil && p >= 0 {
		q.Page = p
	}
	if l, err := strconv.Atoi(values.Get("limit")); err == nil && l > 0 {
		q.Limit = l
	}

	for _, name := range facets {
		var vals []string
		for _, v := range values[name] {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					vals = append(vals, part)
				}
			}
		}
		if len(vals) > 0 {
			q.In[name] = vals
		}
	}
	return q
}

// Signature đại diện cho bộ lọc (không gồm sắp xếp và trang)
func (q Query) Signature() string {
	var b strings.Builder
	b.WriteString(Normalize(q.Search))
	names := make([]string, 0, len(q.In))
	for name := range q.In {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		vals := append([]string(nil), q.In[name]...)
		sort.Strings(vals)
		b.WriteString("|" + name + "=" + strings.Join(vals, ","))
	}
	return b.String()
}

// State ghi nhớ bộ lọc gần nhất của một danh sách
type State struct {
	Signature string `json:"signature"`
	Page      int    `json:"page"`
}

// Advance cập nhật state theo q. Khi bộ lọc đổi, trang được đưa về 0.
func (s *State) Advance(q Query) Query {
	sig := q.Signature()
	if sig != s.Signature {
		q.Page = 0
	}
	s.Signature = sig
	s.Page = q.Page
	return q
}
