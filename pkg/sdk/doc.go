// Package restodex provides a Go client for the restodex restaurant
// directory HTTP API.
//
//	client, _ := restodex.New("http://localhost:8080")
//	page, _ := client.Search(ctx, "pizza", nil)
//	near, _ := client.Nearby(ctx, -73.98, 40.73, 500, nil)
//
// Collection calls return a page of restaurants plus pagination metadata.
// Errors are typed: use errors.Is with ErrNotFound, ErrConflict or
// ErrInvalidInput, or errors.As with *APIError for the full response.
package restodex
