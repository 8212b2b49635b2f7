// Package listing lọc, sắp xếp và phân trang danh sách trong bộ nhớ.
package listing

import (
	"slices"
	"strings"

	"leasedesk/constants"
)

// SortKey là một khóa sắp xếp
type SortKey struct {
	Field string
	Desc  bool
}

// Toggle đảo chiều sắp xếp
func (k SortKey) Toggle() SortKey {
	k.Desc = !k.Desc
	return k
}

// Query là tham số danh sách của một request
type Query struct {
	Search string
	In     map[string][]string
	Sort   []SortKey
	Page   int // bắt đầu từ 0
	Limit  int
}

// Spec mô tả cách lọc và sắp xếp một loại đối tượng
type Spec[T any] struct {
	// SearchFields trả về các trường dùng cho tìm kiếm chuỗi con
	SearchFields func(T) []string
	// Facets là các trường lọc theo tập giá trị (status, building...)
	Facets map[string]func(T) []string
	// Sorters so sánh hai phần tử theo một trường, trả về <0, 0, >0
	Sorters map[string]func(a, b T) int
}

// Result là một trang kết quả
type Result[T any] struct {
	Items      []T
	Total      int
	Page       int
	Limit      int
	TotalPages int
	// Suggestion là từ khóa gần đúng khi tìm kiếm không có kết quả
	Suggestion string
}

// Apply lọc, sắp xếp ổn định rồi cắt trang. items không bị thay đổi.
func Apply[T any](items []T, spec Spec[T], q Query) Result[T] {
	filtered := Filter(items, spec, q)
	Sort(filtered, spec, q.Sort)

	res := Paginate(filtered, q.Page, q.Limit)
	if res.Total == 0 && q.Search != "" && spec.SearchFields != nil {
		res.Suggestion = Suggest(q.Search, collectFields(items, spec.SearchFields))
	}
	return res
}

// Filter giữ lại phần tử khớp từ khóa và mọi facet
func Filter[T any](items []T, spec Spec[T], q Query) []T {
	needle := Normalize(q.Search)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if needle != "" && spec.SearchFields != nil && !matchesSearch(spec.SearchFields(item), needle) {
			continue
		}
		if !matchesFacets(item, spec, q.In) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch(fields []string, needle string) bool {
	for _, f := range fields {
		if strings.Contains(Normalize(f), needle) {
			return true
		}
	}
	return false
}

func matchesFacets[T any](item T, spec Spec[T], in map[string][]string) bool {
	for name, allowed := range in {
		if len(allowed) == 0 {
			continue
		}
		get, ok := spec.Facets[name]
		if !ok {
			continue
		}
		if !anyIn(get(item), allowed) {
			return false
		}
	}
	return true
}

func anyIn(values, allowed []string) bool {
	for _, v := range values {
		if slices.Contains(allowed, v) {
			return true
		}
	}
	return false
}

// Sort sắp xếp ổn định theo nhiều khóa; khóa không biết bị bỏ qua
func Sort[T any](items []T, spec Spec[T], keys []SortKey) {
	var cmps []func(a, b T) int
	for _, k := range keys {
		cmp, ok := spec.Sorters[k.Field]
		if !ok {
			continue
		}
		if k.Desc {
			asc := cmp
			cmp = func(a, b T) int { return asc(b, a) }
		}
		cmps = append(cmps, cmp)
	}
	if len(cmps) == 0 {
		return
	}
	slices.SortStableFunc(items, func(a, b T) int {
		for _, cmp := range cmps {
			if r := cmp(a, b); r != 0 {
				return r
			}
		}
		return 0
	})
}

// Paginate cắt trang. Trang vượt quá được kéo về trang cuối.
func Paginate[T any](items []T, page, limit int) Result[T] {
	limit = NormalizeLimit(limit)
	total := len(items)
	totalPages := (total + limit - 1) / limit
	if page < 0 {
		page = 0
	}
	if totalPages > 0 && page >= totalPages {
		page = totalPages - 1
	}
	start := page * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Result[T]{
		Items:      items[start:end],
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// NormalizeLimit áp dụng kích thước trang mặc định và giới hạn tối đa
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		return constants.MaxPageSize
	}
	return limit
}

func collectFields[T any](items []T, fields func(T) []string) []string {
	var out []string
	for _, item := range items {
		out = append(out, fields(item)...)
	}
	return out
}

// Comparators dùng chung

// CompareStrings so sánh không phân biệt hoa thường và dấu. Hai chuỗi chỉ khác
// nhau về hoa thường/dấu được xếp theo chuỗi gốc để thứ tự luôn xác định.
func CompareStrings(a, b string) int {
	if c := strings.Compare(Normalize(a), Normalize(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func CompareNumbers[N int | uint | int64 | float64](a, b N) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
