// Package domain defines the models exchanged with the mitaina API.
//
// Types here are plain values decoded from the backend's JSON. The
// package also holds local validation that mirrors the server-side
// rules, so obvious mistakes are rejected before a request is sent:
//
//   - User, Post, Notification, Follow: API resources
//   - Page: the page-number pagination envelope
//   - Errors: MT- coded validation errors
package domain
