// Package vendus is the infrastructure adapter for the Cegid Vendus REST API.
//
// Client performs one authenticated call per Do, bounded by the configured
// timeout, and classifies transport failures into domain errors:
//
//   - a missing API key fails with ConfigMissing before any network call
//   - an expired deadline fails with UpstreamTimeout (504)
//   - any other transport failure fails with UpstreamCallFailed (502)
//
// Any HTTP status is returned to the caller, which decides how a non-2xx
// answer maps to the domain. Fetch is the shorthand for reads where any
// non-2xx answer is an UpstreamCallFailed.
//
// Bodies are never trusted to be well formed: ParseBody degrades malformed
// JSON to {"raw": text} and NormalizeList accepts the several list envelopes
// the upstream is known to use.
package vendus
