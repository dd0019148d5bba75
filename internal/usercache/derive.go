package usercache

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/userconsole/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter keeps the users whose lowercased "first last" or email contains the
// trimmed, lowercased term. An empty term keeps everyone. The input is never
// modified.
func Filter(users []models.User, term string) []models.User {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if needle == "" ||
			strings.Contains(strings.ToLower(u.FullName()), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle) {
			out = append(out, u)
		}
	}
	return out
}

// Sort orders users in place with English collation. The sort is stable and
// SortNone leaves the order untouched.
func Sort(users []models.User, opt models.SortOption) {
	var key func(models.User) string
	desc := false

	switch opt {
	case models.SortNameAsc:
		key = models.User.FullName
	case models.SortNameDesc:
		key, desc = models.User.FullName, true
	case models.SortEmailAsc:
		key = func(u models.User) string { return u.Email }
	case models.SortEmailDesc:
		key, desc = func(u models.User) string { return u.Email }, true
	default:
		return
	}

	// a Collator keeps scratch buffers, so each call gets its own
	col := collate.New(language.English)
	slices.SortStableFunc(users, func(a, b models.User) int {
		if desc {
			a, b = b, a
		}
		return col.CompareString(key(a), key(b))
	})
}

// TotalPages is ceil(n / PageSize).
func TotalPages(n int) int {
	return (n + models.PageSize - 1) / models.PageSize
}

// Paginate returns a copy of the 1-based page of users. A page outside
// [1, TotalPages] yields an empty slice; it is not clamped.
func Paginate(users []models.User, page int) []models.User {
	// checked before the multiplication, which overflows for large pages
	if page < 1 || page > TotalPages(len(users)) {
		return []models.User{}
	}
	start := (page - 1) * models.PageSize
	end := min(start+models.PageSize, len(users))
	return append([]models.User(nil), users[start:end]...)
}

// Derive applies filter, sort and pagination to users for view and returns
// the page items and the page count of the filtered set. It is pure: neither
// users nor view is modified.
func Derive(users []models.User, view models.ViewState) ([]models.User, int) {
	filtered := Filter(users, view.SearchTerm)
	Sort(filtered, view.Sort)
	return Paginate(filtered, view.Page), TotalPages(len(filtered))
}
