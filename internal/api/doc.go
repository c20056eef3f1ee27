// Package api exposes environment classification over HTTP.
//
//	POST /v1/classify                          classify a snapshot and memoise it
//	GET  /v1/environments/{id}                 last classification of an environment
//	GET  /v1/environments/{id}/fields/{field}  one encoded field, e.g. BROWSER_NAME
//	GET  /health/live, /health/ready
//
// Responses use the {"data": ...} / {"error": {"code", "message"}} envelope.
package api
