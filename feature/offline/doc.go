// Package offline is a host for the catalog that reads plugins straight
// from disk or a bucket instead of a running game.
//
// Load reads every plugin of a load order concurrently, assigns compile
// indices the way the game does (full plugins count up from 00, light
// plugins share FE and count up in their own small index space), resolves
// each record's master-relative form ID to a load-order form ID and keeps
// the last file that touched a form as its origin.
//
// An offline host has no live actors; its actor tiers are always empty.
package offline
