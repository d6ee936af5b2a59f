// Package http contains the chi HTTP handlers for the dashboard API:
// aggregate queries, filter metadata, workbook export, cache refresh and
// health checks. Handlers translate query parameters into filter specs,
// delegate to the service layer and render JSON via go-chi/render, with
// RFC 7807 style problem responses on failure.
package http
