package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/userconsole/internal/models"
)

func (a *App) List(ctx context.Context) error {
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}
	a.renderPage(a.cache.View())
	return nil
}

func (a *App) Page(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("usage: page <n>")
	}
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}
	if err := a.cache.SetPage(ctx, n); err != nil {
		return err
	}
	a.renderPage(a.cache.View())
	return nil
}

func (a *App) Next(ctx context.Context) error {
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}
	p := a.cache.View()
	if p.CurrentPage >= p.TotalPages {
		fmt.Fprintln(a.out, "Already on the last page")
		return nil
	}
	return a.Page(ctx, strconv.Itoa(p.CurrentPage+1))
}

func (a *App) Prev(ctx context.Context) error {
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}
	p := a.cache.View()
	if p.CurrentPage <= 1 {
		fmt.Fprintln(a.out, "Already on the first page")
		return nil
	}
	return a.Page(ctx, strconv.Itoa(p.CurrentPage-1))
}

// Search filters by term and goes back to the first page. An empty term
// clears the filter.
func (a *App) Search(ctx context.Context, term string) error {
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}
	a.cache.SetSearch(term)
	if err := a.cache.SetPage(ctx, 1); err != nil {
		return err
	}
	a.renderPage(a.cache.View())
	return nil
}

// Sort changes the ordering. Without an argument it lists the options.
func (a *App) Sort(ctx context.Context, arg string) error {
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}
	if arg == "" {
		current := a.cache.View().Sort
		for _, o := range models.SortOptions() {
			mark := " "
			if o == current {
				mark = "*"
			}
			fmt.Fprintf(a.out, "%s %-10s %s\n", mark, o, o.Label())
		}
		return nil
	}

	opt, err := models.ParseSortOption(arg)
	if err != nil {
		return err
	}
	a.cache.SetSort(opt)
	a.renderPage(a.cache.View())
	return nil
}

func (a *App) Show(ctx context.Context, arg string) error {
	u, ok, err := a.lookup(ctx, arg, "show")
	if err != nil || !ok {
		return err
	}
	fmt.Fprintf(a.out, "ID:     %d\nName:   %s\nEmail:  %s\nAvatar: %s\n", u.ID, u.FullName(), u.Email, u.Avatar)
	return nil
}

// Reset throws away local edits and deletions and reloads everything.
func (a *App) Reset(ctx context.Context) error {
	fmt.Fprintln(a.out, "Loading users...")
	if err := a.cache.Reset(ctx); err != nil {
		return err
	}
	a.loaded = true
	fmt.Fprintln(a.out, "Data reset")
	a.renderPage(a.cache.View())
	return nil
}

// lookup parses an id argument and finds the user. A missing user is
// reported to the user and is not an error.
func (a *App) lookup(ctx context.Context, arg, cmd string) (models.User, bool, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return models.User{}, false, fmt.Errorf("usage: %s <id>", cmd)
	}
	if err := a.ensureLoaded(ctx); err != nil {
		return models.User{}, false, err
	}
	u, ok := a.cache.UserByID(id)
	if !ok {
		fmt.Fprintf(a.out, "User #%d not found\n", id)
	}
	return u, ok, nil
}

func (a *App) renderPage(p models.Page) {
	if p.Loading {
		fmt.Fprintln(a.out, "Loading users...")
		return
	}

	if len(p.Users) == 0 {
		fmt.Fprintln(a.out, "No users found")
	} else {
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tEMAIL")
		for _, u := range p.Users {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", u.ID, u.FullName(), u.Email)
		}
		tw.Flush()
	}

	if pager := formatPager(p.CurrentPage, p.TotalPages); pager != "" {
		fmt.Fprintln(a.out, pager)
	}
}

// formatPager renders the page buttons, e.g. "[1] 2 3" on page 1 of 3.
func formatPager(current, total int) string {
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if i == current {
			pages = append(pages, fmt.Sprintf("[%d]", i))
		} else {
			pages = append(pages, strconv.Itoa(i))
		}
	}
	return strings.Join(pages, " ")
}
