// Package service contains the storefront workflows that sit between the HTTP
// handlers and the Vendus API: listing and creating products, creating
// clients, and listing and issuing invoice documents.
//
// Services receive their dependencies through constructor injection. The
// upstream API is reached through the Upstream interface, which the
// vendus.Client satisfies, and every successful write is published as an
// event through an events.Emitter.
//
// Error Handling:
//   - Expected failures (validation, missing lookups, upstream rejections) are
//     returned as *domain.Error values carrying their HTTP status and code
//   - Any other failure is wrapped in a ServiceError naming the service and
//     the operation, so callers can still inspect the cause with errors.Is/As
package service
