// Package report ships classification results to a collection endpoint as
// tracking pixels.
//
// A Reporter turns ordered key/value pairs (usually classify.Encoded.Params)
// into "base?k=v&..." URLs and hands them to a Sink. Reports logged before a
// base URL is known wait in a queue that SetBaseURL flushes in order.
//
//	r := report.NewReporter(report.NewHTTPSink(), report.WithLogger(log))
//	r.Log(ctx, result.Encode().Params()) // queued
//	r.SetBaseURL(ctx, "https://collect.example.com/p.gif")
//
// HTTPSink fires the pixel with a GET request and retries transient
// failures. PGSink stores it in Postgres instead; its schema ships as
// embedded goose migrations applied by Migrate. Delivery errors are logged
// and never reach the caller of Log.
package report
