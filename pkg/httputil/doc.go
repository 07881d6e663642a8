// Package httputil holds the HTTP client plumbing shared by API clients and
// remote caches.
//
// [PostJSON] sends a JSON body and decodes a JSON reply. Network errors,
// 429 and 5xx replies come back wrapped by [Retryable]; any other non-2xx
// reply is a [*StatusError]. Every call is reported to observability.HTTP.
//
// [Backoff] retries only errors that wrap a [RetryableError]:
//
//	var out concepts.Response
//	err := httputil.DefaultBackoff.Do(ctx, func() error {
//	    return httputil.PostJSON(ctx, client, url, in, &out)
//	})
//
// [DefaultBackoff] makes three attempts, 1s apart and then 2s.
package httputil
