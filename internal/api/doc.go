// Package api handles incoming HTTP requests, request decoding and
// validation, and response formatting. It adapts the storefront HTTP surface
// (health, products, clients, documents) to the workflows in the service
// package and renders every outcome in the {ok, data} / {ok, error, details}
// envelope.
package api
