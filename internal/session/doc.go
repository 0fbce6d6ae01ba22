// Package session provides access to the persisted session token.
//
// The token is an opaque credential issued by the backend on login.
// Its presence is the only signal the client uses both for attaching
// credentials to requests and for gating navigation; there is no
// expiry or content validation on the client side.
package session
