// Package apiclient is the integration layer between the front-end and the
// student API.
//
// A call flows through two stages:
//
//   - Executor builds an authenticated, time-bounded HTTP request and returns
//     the raw Outcome: the status code and body for any HTTP response, or a
//     transport error.
//   - Normalize turns an Outcome into a CallResult tagged as transport
//     failure, decode failure, or success with a decoded JSON Value.
//
// Neither stage panics or returns network faults as Go errors to the caller:
// every failure is carried in the CallResult.
//
// Client combines both stages with a base URL and credentials:
//
//	exec := apiclient.NewExecutor(apiclient.ExecutorConfig{Middleware: mw})
//	client, err := apiclient.NewClient(apiclient.ClientConfig{
//	    BaseURL:     "http://api:5000",
//	    Credentials: &apiclient.Credentials{Username: "toto", Password: "python"},
//	    Timeout:     10 * time.Second,
//	}, exec)
//
//	res := client.Get(ctx, "/health", "health")
//	if status, err := res.Payload().StringField("status"); err == nil && status == "healthy" {
//	    // ...
//	}
package apiclient
