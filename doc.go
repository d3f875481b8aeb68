// Package restchain wraps REST APIs behind a fluent chain of URL
// segments:
//
//   - Child nodes are created on demand and memoized by name, so the
//     chain mirrors the API's path structure
//   - Verb methods (Get / Post / Put / Patch / Delete) terminate a chain
//     and return the JSON-parsed body as a navigable Value
//   - Headers, the debug flag and the cache lifetime are stored per node
//     and flow down the chain; per-call options win over node defaults
//   - GET responses can be cached in memory for a lifetime, with lazy
//     expiry and an optional cron-driven janitor
//   - Prometheus metrics and lightweight structured debug logging
//
// Design goals:
//   - Small surface area – functional options configure everything
//   - Safe concurrent use of a single chain and its Client
//   - Extensibility via user supplied middleware & pluggable cache / metrics
//
// Typical usage:
//
//	api := restchain.Wrap("https://api.example.com")
//	user, err := api.Child("users").Get(ctx, restchain.PK(42))
//	if err != nil {
//	    // only transport failures and non-JSON bodies are errors
//	}
//	fmt.Println(user.Get("name").String())
//
// Non-2xx responses are not errors: the parsed body is returned and the
// status code is only visible in the debug trace. Enable tracing with
// WithSimpleLogger or supply your own Logger via WithLogger.
package restchain
