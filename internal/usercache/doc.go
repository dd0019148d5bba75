// Package usercache owns the client-side copy of the upstream user
// collection.
//
// A Cache is built once per console session and passed to whoever needs the
// users. Initialize either restores the collection persisted in the session
// store or pages through the upstream (strictly one page after another) and
// flattens every page into one ordered slice. After that everything is local:
// search, sorting and pagination are recomputed on each read by Derive, and
// UpdateRecord/DeleteRecord change only the cached copy. Every mutation after
// initialization writes the collection back to the session store.
//
// Lifecycle: New -> Initialize -> mutate* -> Close. Reset throws the cached
// collection away and reloads it from the upstream.
package usercache
