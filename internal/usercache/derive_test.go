package usercache

import (
	"math"
	"testing"

	"github.com/dmitrijs2005/userconsole/internal/mockapi"
	"github.com/dmitrijs2005/userconsole/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u(id int, first, last, email string) models.User {
	return models.User{ID: id, FirstName: first, LastName: last, Email: email}
}

func ids(users []models.User) []int {
	out := make([]int, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func TestDerive_SortByName(t *testing.T) {
	users := []models.User{u(1, "Bob", "Young", "b@x"), u(2, "Amy", "Zed", "a@x")}

	items, total := Derive(users, models.ViewState{Sort: models.SortNameAsc, Page: 1})
	assert.Equal(t, []int{2, 1}, ids(items))
	assert.Equal(t, 1, total)

	items, _ = Derive(users, models.ViewState{Sort: models.SortNameDesc, Page: 1})
	assert.Equal(t, []int{1, 2}, ids(items))

	items, _ = Derive(users, models.ViewState{Sort: models.SortNone, Page: 1})
	assert.Equal(t, []int{1, 2}, ids(items))
}

func TestDerive_SortByEmail(t *testing.T) {
	users := []models.User{u(1, "A", "A", "zed@x"), u(2, "B", "B", "amy@x"), u(3, "C", "C", "max@x")}

	items, _ := Derive(users, models.ViewState{Sort: models.SortEmailAsc, Page: 1})
	assert.Equal(t, []int{2, 3, 1}, ids(items))

	items, _ = Derive(users, models.ViewState{Sort: models.SortEmailDesc, Page: 1})
	assert.Equal(t, []int{1, 3, 2}, ids(items))
}

func TestSort_CollationIgnoresCase(t *testing.T) {
	// byte order would put "Bob" before "alice"
	users := []models.User{u(1, "Bob", "X", "b@x"), u(2, "alice", "X", "a@x")}
	Sort(users, models.SortNameAsc)
	assert.Equal(t, []int{2, 1}, ids(users))
}

func TestSort_StableOnTies(t *testing.T) {
	users := []models.User{
		u(1, "Sam", "Lee", "1@x"),
		u(2, "Abe", "Ray", "2@x"),
		u(3, "Sam", "Lee", "3@x"),
		u(4, "Sam", "Lee", "4@x"),
	}

	asc := append([]models.User(nil), users...)
	Sort(asc, models.SortNameAsc)
	assert.Equal(t, []int{2, 1, 3, 4}, ids(asc))

	desc := append([]models.User(nil), users...)
	Sort(desc, models.SortNameDesc)
	assert.Equal(t, []int{1, 3, 4, 2}, ids(desc))
}

func TestFilter(t *testing.T) {
	users := []models.User{
		u(1, "Bob", "Young", "b@x"),
		u(2, "Amy", "Zed", "a@x"),
		u(3, "Carl", "Amyson", "c@x"),
		u(4, "Dora", "D", "amy.d@x"),
	}

	tests := []struct {
		name string
		term string
		want []int
	}{
		{"empty keeps all", "", []int{1, 2, 3, 4}},
		{"blank keeps all", "   ", []int{1, 2, 3, 4}},
		{"first name", "bob", []int{1}},
		{"case and whitespace", "  AMY ", []int{2, 3, 4}},
		{"across first and last", "amy zed", []int{2}},
		{"email", "c@x", []int{3}},
		{"no match", "nobody", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(users, tt.term)))
		})
	}
}

func TestDerive_SearchDrivesTotalPages(t *testing.T) {
	users := []models.User{u(1, "Bob", "Young", "b@x"), u(2, "Amy", "Zed", "a@x")}

	items, total := Derive(users, models.ViewState{SearchTerm: "amy", Page: 1})
	assert.Equal(t, []int{2}, ids(items))
	assert.Equal(t, 1, total)

	items, total = Derive(users, models.ViewState{SearchTerm: "zzz", Page: 1})
	assert.Empty(t, items)
	assert.Equal(t, 0, total)
}

func TestDerive_Pagination(t *testing.T) {
	users := mockapi.GenerateUsers(13)

	items, total := Derive(users, models.ViewState{Page: 3})
	assert.Equal(t, 3, total)
	assert.Equal(t, []int{13}, ids(items))

	items, _ = Derive(users, models.ViewState{Page: 1})
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(items))

	t.Run("out of range is empty", func(t *testing.T) {
		for _, p := range []int{0, -1, 4, 100, math.MinInt} {
			items, total := Derive(users, models.ViewState{Page: p})
			assert.Empty(t, items, "page %d", p)
			assert.NotNil(t, items)
			assert.Equal(t, 3, total)
		}
	})
}

func TestDerive_PagesCoverFilteredSortedSequence(t *testing.T) {
	users := mockapi.SeedUsers()
	users = append(users, mockapi.GenerateUsers(7)...)
	for i := range users {
		users[i].ID = i + 1
	}

	for _, opt := range models.SortOptions() {
		for _, term := range []string{"", "e", "test", "reqres"} {
			view := models.ViewState{SearchTerm: term, Sort: opt}

			want := Filter(users, term)
			Sort(want, opt)

			var got []models.User
			_, total := Derive(users, view)
			assert.Equal(t, TotalPages(len(want)), total)
			for p := 1; p <= total; p++ {
				view.Page = p
				items, _ := Derive(users, view)
				assert.LessOrEqual(t, len(items), models.PageSize)
				got = append(got, items...)
			}
			assert.Equal(t, ids(want), ids(got), "sort=%s term=%q", opt, term)
		}
	}
}

func TestDerive_IsPure(t *testing.T) {
	users := []models.User{u(1, "Bob", "Young", "b@x"), u(2, "Amy", "Zed", "a@x"), u(3, "Cy", "W", "c@x")}
	before := append([]models.User(nil), users...)
	view := models.ViewState{SearchTerm: "y", Sort: models.SortNameAsc, Page: 1}

	first, t1 := Derive(users, view)
	second, t2 := Derive(users, view)

	assert.Equal(t, before, users)
	assert.Equal(t, first, second)
	assert.Equal(t, t1, t2)

	require.NotEmpty(t, first)
	first[0].FirstName = "changed"
	assert.Equal(t, before, users)
}

func TestTotalPages(t *testing.T) {
	for n, want := range map[int]int{0: 0, 1: 1, 6: 1, 7: 2, 12: 2, 13: 3} {
		assert.Equal(t, want, TotalPages(n), "n=%d", n)
	}
}

func TestDerive_HugePageIsEmpty(t *testing.T) {
	users := mockapi.GenerateUsers(13)

	for _, p := range []int{math.MaxInt/models.PageSize + 2, math.MaxInt} {
		var items []models.User
		var total int
		require.NotPanics(t, func() {
			items, total = Derive(users, models.ViewState{Page: p})
		}, "page %d", p)
		assert.Empty(t, items)
		assert.NotNil(t, items)
		assert.Equal(t, 3, total)
	}
}
