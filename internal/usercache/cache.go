package usercache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/userconsole/internal/common"
	"github.com/dmitrijs2005/userconsole/internal/logging"
	"github.com/dmitrijs2005/userconsole/internal/models"
	"github.com/dmitrijs2005/userconsole/internal/remote"
	"github.com/dmitrijs2005/userconsole/internal/session"
)

// Cache holds the flattened user collection of one console session.
// It is safe for concurrent use. Network requests of LoadAll run without the
// lock held so that View can observe the loading flag.
type Cache struct {
	client remote.Client
	store  session.Store
	logger logging.Logger

	mu          sync.Mutex
	users       []models.User
	totalPages  int
	currentPage int
	loading     bool
	initialized bool
	closed      bool
	loadErr     error

	search string
	sort   models.SortOption
}

func New(client remote.Client, store session.Store, logger logging.Logger) *Cache {
	return &Cache{
		client:      client,
		store:       store,
		logger:      logger.With("component", "usercache"),
		currentPage: 1,
		sort:        models.SortNone,
	}
}

// Initialize restores the collection from the session store, or loads it from
// the upstream when nothing usable is stored.
func (c *Cache) Initialize(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return common.ErrClosed
	}
	c.mu.Unlock()

	raw, err := c.store.Get(ctx, common.UserDataKey)
	if err != nil {
		return fmt.Errorf("failed to read stored users: %w", err)
	}

	if raw != nil {
		var snap models.Snapshot
		decodeErr := json.Unmarshal(raw, &snap)
		if decodeErr == nil {
			c.mu.Lock()
			c.users = snap.Users
			c.totalPages = snap.TotalPages
			c.currentPage = max(snap.CurrentPage, 1)
			c.loading = false
			c.initialized = true
			c.mu.Unlock()
			c.logger.Debug(ctx, "users restored from session", "count", len(snap.Users))
			return nil
		}
		c.logger.Warn(ctx, "discarding unreadable stored users", "error", decodeErr)
		if err := c.store.Delete(ctx, common.UserDataKey); err != nil {
			return fmt.Errorf("failed to drop stored users: %w", err)
		}
	}

	return c.LoadAll(ctx)
}

// LoadAll fetches every upstream page one after another and replaces the
// collection. On failure the previous collection is kept, the error is
// remembered for Err and returned wrapped in common.ErrLoadFailed.
func (c *Cache) LoadAll(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return common.ErrClosed
	}
	c.loading = true
	c.mu.Unlock()

	users, totalPages, err := fetchAll(ctx, c.client)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.loading = false
	if err != nil {
		c.loadErr = err
		c.logger.Error(ctx, "failed to load users", "error", err)
		return fmt.Errorf("%w: %w", common.ErrLoadFailed, err)
	}

	c.users = users
	c.totalPages = totalPages
	c.currentPage = 1
	c.loadErr = nil
	c.initialized = true
	c.logger.Info(ctx, "users loaded", "count", len(users), "pages", totalPages)

	return c.persistLocked(ctx)
}

// fetchAll requests page 1, then pages 2..total_pages strictly in sequence,
// and concatenates the data in page order.
func fetchAll(ctx context.Context, client remote.Client) ([]models.User, int, error) {
	first, err := client.ListUsers(ctx, 1)
	if err != nil {
		return nil, 0, fmt.Errorf("page 1: %w", err)
	}

	users := append([]models.User(nil), first.Data...)
	for page := 2; page <= first.TotalPages; page++ {
		list, err := client.ListUsers(ctx, page)
		if err != nil {
			return nil, 0, fmt.Errorf("page %d: %w", page, err)
		}
		users = append(users, list.Data...)
	}

	return users, first.TotalPages, nil
}

// Reset drops the stored collection, restores the default search and sort
// and reloads from the upstream.
func (c *Cache) Reset(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return common.ErrClosed
	}
	c.initialized = false
	c.search = ""
	c.sort = models.SortNone
	c.mu.Unlock()

	if err := c.store.Delete(ctx, common.UserDataKey); err != nil {
		return fmt.Errorf("failed to drop stored users: %w", err)
	}

	return c.LoadAll(ctx)
}

// UpdateRecord merges the set fields of patch into the user with id. The
// position of the record is kept. It reports whether a record matched; an
// unknown id is not an error.
func (c *Cache) UpdateRecord(ctx context.Context, id int, patch models.UserPatch) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false, common.ErrClosed
	}

	for i := range c.users {
		if c.users[i].ID == id {
			c.users[i] = patch.Apply(c.users[i])
			return true, c.persistLocked(ctx)
		}
	}
	return false, nil
}

// DeleteRecord removes the user with id. The current page is left as is even
// when it no longer exists.
func (c *Cache) DeleteRecord(ctx context.Context, id int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false, common.ErrClosed
	}

	idx := -1
	for i := range c.users {
		if c.users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	users := make([]models.User, 0, len(c.users)-1)
	users = append(users, c.users[:idx]...)
	users = append(users, c.users[idx+1:]...)
	c.users = users

	return true, c.persistLocked(ctx)
}

// SetSearch changes the search term. Like the sort it is view state and is
// not persisted.
func (c *Cache) SetSearch(term string) {
	c.mu.Lock()
	c.search = term
	c.mu.Unlock()
}

func (c *Cache) SetSort(opt models.SortOption) {
	c.mu.Lock()
	c.sort = opt
	c.mu.Unlock()
}

// SetPage selects the current page. Pages past the end are accepted and
// render empty.
func (c *Cache) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		return fmt.Errorf("%w: page must be >= 1, got %d", common.ErrValidation, page)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return common.ErrClosed
	}
	c.currentPage = page
	return c.persistLocked(ctx)
}

// View derives the current page from the collection and the view state.
func (c *Cache) View() models.Page {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, total := Derive(c.users, models.ViewState{
		SearchTerm: c.search,
		Sort:       c.sort,
		Page:       c.currentPage,
	})

	return models.Page{
		Users:       items,
		TotalPages:  total,
		CurrentPage: c.currentPage,
		Loading:     c.loading,
		SearchTerm:  c.search,
		Sort:        c.sort,
	}
}

// Users returns a copy of the full collection in cache order.
func (c *Cache) Users() []models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.User(nil), c.users...)
}

func (c *Cache) UserByID(id int) (models.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, u := range c.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// Err returns the error of the last failed load, or nil after a successful one.
func (c *Cache) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// Close writes the collection a last time and rejects further mutations.
// The session store is owned by the caller and stays open.
func (c *Cache) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	err := c.persistLocked(ctx)
	c.closed = true
	return err
}

// persistLocked writes the snapshot once the cache is initialized.
// c.mu must be held.
func (c *Cache) persistLocked(ctx context.Context) error {
	if !c.initialized {
		return nil
	}

	raw, err := json.Marshal(models.Snapshot{
		Users:       c.users,
		TotalPages:  c.totalPages,
		CurrentPage: c.currentPage,
		Loading:     c.loading,
	})
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}

	if err := c.store.Set(ctx, common.UserDataKey, raw); err != nil {
		c.logger.Warn(ctx, "failed to persist users", "error", err)
		return fmt.Errorf("failed to persist users: %w", err)
	}
	return nil
}
