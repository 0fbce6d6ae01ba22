// Package tlsroots builds the trust store used for HTTPS calls to the API.
//
// The system pool is always included; an extra PEM bundle can be added
// for self-hosted backends behind a private CA.
package tlsroots
