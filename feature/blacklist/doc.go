// Package blacklist keeps the list of origin files hidden from the
// catalog's filtered name lists.
//
// Entries live in the origin_blacklist table when a database is configured
// and only in memory otherwise. Store satisfies catalog.Blacklist; lookups
// are served from an in-memory copy and ignore case.
package blacklist
