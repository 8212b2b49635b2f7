package listing

import (
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Normalize bỏ dấu, chuyển chữ thường và cắt khoảng trắng
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

// Suggest tìm giá trị gần đúng nhất với query trong candidates
func Suggest(query string, candidates []string) string {
	unique := make(map[string]bool)
	var list []string
	for _, c := range candidates {
		n := Normalize(c)
		if n == "" || unique[n] {
			continue
		}
		unique[n] = true
		list = append(list, n)
	}
	if len(list) == 0 {
		return ""
	}
	cm := closestmatch.New(list, []int{2, 3})
	return cm.Closest(Normalize(query))
}

// Similarity trả về độ tương đồng [0, 1] giữa hai chuỗi đã chuẩn hóa
func Similarity(a, b string) float64 {
	ra, rb := []rune(Normalize(a)), []rune(Normalize(b))
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	distance := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptionsWithSub)
	return 1.0 - float64(distance)/float64(maxLen)
}
