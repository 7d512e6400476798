// Package handlers contains the HTTP handlers of the agency site.
//
// This package provides handlers for:
//   - Home, static pages and the blog (HTML via internal/view)
//   - The contact endpoint (JSON)
//   - Liveness and readiness (monitoring)
//
// Errors on JSON endpoints go through the foundation/errors HTTP adapter;
// HTML endpoints render the not found and error templates instead.
package handlers
