package listing

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	No       string
	Tenant   string
	Status   string
	Building string
	Rent     float64
}

var rowSpec = Spec[row]{
	SearchFields: func(r row) []string { return []string{r.No, r.Tenant} },
	Facets: map[string]func(row) []string{
		"status":   func(r row) []string { return []string{r.Status} },
		"building": func(r row) []string { return []string{r.Building} },
	},
	Sorters: map[string]func(a, b row) int{
		"contractNo": func(a, b row) int { return CompareStrings(a.No, b.No) },
		"rent":       func(a, b row) int { return CompareNumbers(a.Rent, b.Rent) },
		"status":     func(a, b row) int { return CompareStrings(a.Status, b.Status) },
	},
}

func sampleRows() []row {
	return []row{
		{"HD-003", "Công ty Ánh Dương", "active", "A", 300},
		{"HD-001", "Nguyễn Văn Bình", "draft", "B", 100},
		{"HD-002", "Sunrise Trading", "active", "A", 100},
		{"HD-005", "Harbor Foods", "expired", "C", 500},
		{"HD-004", "anh duong retail", "active", "B", 200},
	}
}

func numbers(rs []row) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.No
	}
	return out
}

func TestFilter_SearchIsCaseAndAccentInsensitive(t *testing.T) {
	res := Apply(sampleRows(), rowSpec, Query{Search: "ANH DUONG"})
	assert.ElementsMatch(t, []string{"HD-003", "HD-004"}, numbers(res.Items))
}

func TestFilter_Facets(t *testing.T) {
	q := Query{In: map[string][]string{"status": {"active"}, "building": {"A", "C"}}}
	res := Apply(sampleRows(), rowSpec, q)
	assert.ElementsMatch(t, []string{"HD-003", "HD-002"}, numbers(res.Items))
}

func TestSort_ToggleIsExactReverse(t *testing.T) {
	asc := Apply(sampleRows(), rowSpec, Query{Sort: []SortKey{{Field: "contractNo"}}})
	desc := Apply(sampleRows(), rowSpec, Query{Sort: []SortKey{SortKey{Field: "contractNo"}.Toggle()}})

	require.Equal(t, []string{"HD-001", "HD-002", "HD-003", "HD-004", "HD-005"}, numbers(asc.Items))
	reversed := numbers(asc.Items)
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	assert.Equal(t, reversed, numbers(desc.Items))

	again := Apply(sampleRows(), rowSpec, Query{Sort: []SortKey{SortKey{Field: "contractNo"}.Toggle().Toggle()}})
	assert.Equal(t, numbers(asc.Items), numbers(again.Items))
}

func TestSort_ToggleReversesCaseVariants(t *testing.T) {
	rows := []row{{No: "HD-a1"}, {No: "HD-A1"}, {No: "HD-b2"}, {No: "HD-Á1"}}
	asc := Apply(rows, rowSpec, Query{Sort: []SortKey{{Field: "contractNo"}}})
	desc := Apply(rows, rowSpec, Query{Sort: []SortKey{SortKey{Field: "contractNo"}.Toggle()}})

	assert.Equal(t, []string{"HD-A1", "HD-a1", "HD-Á1", "HD-b2"}, numbers(asc.Items))
	assert.Equal(t, []string{"HD-b2", "HD-Á1", "HD-a1", "HD-A1"}, numbers(desc.Items))
}

func TestCompareStrings(t *testing.T) {
	assert.Equal(t, -1, CompareStrings("an", "Bình"))
	assert.Equal(t, 1, CompareStrings("HD-a1", "HD-A1"))
	assert.Equal(t, 0, CompareStrings("HD-a1", "HD-a1"))
}

func TestSort_MultiKeyIsStable(t *testing.T) {
	res := Apply(sampleRows(), rowSpec, Query{Sort: []SortKey{{Field: "rent"}, {Field: "contractNo", Desc: true}}})
	assert.Equal(t, []string{"HD-002", "HD-001", "HD-004", "HD-003", "HD-005"}, numbers(res.Items))

	// khóa bằng nhau giữ nguyên thứ tự ban đầu
	res = Apply(sampleRows(), rowSpec, Query{Sort: []SortKey{{Field: "status"}}})
	assert.Equal(t, []string{"HD-003", "HD-002", "HD-004", "HD-001", "HD-005"}, numbers(res.Items))
}

func TestSort_UnknownFieldKeepsOrder(t *testing.T) {
	res := Apply(sampleRows(), rowSpec, Query{Sort: []SortKey{{Field: "nope"}}})
	assert.Equal(t, numbers(sampleRows()), numbers(res.Items))
}

func TestPaginate(t *testing.T) {
	var rows []row
	for i := 0; i < 45; i++ {
		rows = append(rows, row{No: fmt.Sprintf("HD-%03d", i)})
	}

	first := Paginate(rows, 0, 0)
	assert.Len(t, first.Items, 20)
	assert.Equal(t, 45, first.Total)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 20, first.Limit)

	last := Paginate(rows, 2, 0)
	assert.Len(t, last.Items, 5)
	assert.Equal(t, "HD-040", last.Items[0].No)

	beyond := Paginate(rows, 9, 0)
	assert.Equal(t, 2, beyond.Page)

	empty := Paginate([]row{}, 3, 0)
	assert.Empty(t, empty.Items)
	assert.Equal(t, 0, empty.Page)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestApply_SuggestionOnEmptyResult(t *testing.T) {
	res := Apply(sampleRows(), rowSpec, Query{Search: "sunrize trading"})
	assert.Empty(t, res.Items)
	assert.Equal(t, "sunrise trading", res.Suggestion)
}

func TestParseQuery(t *testing.T) {
	values := url.Values{
		"search":   {" tower "},
		"sort":     {"name,-rentableArea"},
		"page":     {"2"},
		"limit":    {"50"},
		"status":   {"active,draft"},
		"building": {"1", "2"},
	}
	q := ParseQuery(values, "status", "building", "customer")

	assert.Equal(t, "tower", q.Search)
	assert.Equal(t, []SortKey{{Field: "name"}, {Field: "rentableArea", Desc: true}}, q.Sort)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 50, q.Limit)
	assert.Equal(t, []string{"active", "draft"}, q.In["status"])
	assert.Equal(t, []string{"1", "2"}, q.In["building"])
	assert.NotContains(t, q.In, "customer")
}

func TestState_ResetsPageWhenFilterChanges(t *testing.T) {
	var s State
	q := s.Advance(Query{Search: "tower", Page: 0})
	assert.Equal(t, 0, q.Page)

	q = s.Advance(Query{Search: "tower", Page: 3})
	assert.Equal(t, 3, q.Page, "same filter keeps requested page")

	q = s.Advance(Query{Search: "tower", Page: 3, Sort: []SortKey{{Field: "name"}}})
	assert.Equal(t, 3, q.Page, "sorting is not a filter change")

	q = s.Advance(Query{Search: "harbor", Page: 3})
	assert.Equal(t, 0, q.Page)
	assert.Equal(t, 0, s.Page)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("Công ty Ánh Dương", "cong ty anh duong"))
	assert.InDelta(t, 0.9, Similarity("abcdefghij", "abcdefghix"), 1e-9)
	assert.Equal(t, 1.0, Similarity("", ""))
}
