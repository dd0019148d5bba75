package models

import "fmt"

// PageSize matches the upstream per_page.
const PageSize = 6

// SortOption selects the ordering applied by the derivation.
type SortOption string

const (
	SortNone      SortOption = "none"
	SortNameAsc   SortOption = "nameAsc"
	SortNameDesc  SortOption = "nameDesc"
	SortEmailAsc  SortOption = "emailAsc"
	SortEmailDesc SortOption = "emailDesc"
)

var sortOptions = []SortOption{SortNone, SortNameAsc, SortNameDesc, SortEmailAsc, SortEmailDesc}

// SortOptions lists every accepted option in menu order.
func SortOptions() []SortOption {
	out := make([]SortOption, len(sortOptions))
	copy(out, sortOptions)
	return out
}

// ParseSortOption accepts the canonical names. The empty string means none.
func ParseSortOption(s string) (SortOption, error) {
	if s == "" {
		return SortNone, nil
	}
	for _, o := range sortOptions {
		if string(o) == s {
			return o, nil
		}
	}
	return SortNone, fmt.Errorf("unknown sort option %q", s)
}

// Label is the menu caption of the option.
func (o SortOption) Label() string {
	switch o {
	case SortNameAsc:
		return "Name (A-Z)"
	case SortNameDesc:
		return "Name (Z-A)"
	case SortEmailAsc:
		return "Email (A-Z)"
	case SortEmailDesc:
		return "Email (Z-A)"
	default:
		return "Default Order"
	}
}

// ViewState is the transient search/sort/page selection. It is never
// persisted.
type ViewState struct {
	SearchTerm string
	Sort       SortOption
	Page       int
}

// Page is the derived output handed to the presentation layer.
type Page struct {
	Users       []User
	TotalPages  int
	CurrentPage int
	Loading     bool
	SearchTerm  string
	Sort        SortOption
}

// Snapshot is the persisted layout of the user collection.
type Snapshot struct {
	Users       []User `json:"users"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
	Loading     bool   `json:"loading"`
}

// AuthData is the persisted login token with its expiry in unix milliseconds.
// Email is kept for the console prompt.
type AuthData struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	Email     string `json:"email,omitempty"`
}
