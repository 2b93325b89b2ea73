// Package middleware groups the HTTP middleware of the Fiber application.
//
//   - rayid: tags every request with a ray ID (X-Ray-ID), stored in the
//     context under "ray_id" so logger.WithRayID can pick it up.
//   - auth: checks the API key sent as X-API-Key or a Bearer token. An
//     empty configured key disables the check.
//
// rayid is registered first so rejected requests are traceable too.
package middleware
