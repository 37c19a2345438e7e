// Package joke fetches jokes over HTTP. FetchPair issues two identical GET
// requests concurrently and joins their plain-text bodies in request order.
package joke
