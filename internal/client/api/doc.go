// Package api is the HTTP client for the mitaina REST API.
//
// Every request goes through one pipeline: the session token, when
// present, is attached as "Authorization: Token <value>"; the response
// status is classified; and a 401 clears the stored token and fires the
// session-expired callback before the error reaches the caller.
//
// Paginated endpoints may return absolute next/previous links. FetchPage
// strips them to path and query so the request is sent through the same
// base URL and auth pipeline as every other call.
package api
