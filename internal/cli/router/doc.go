// Package router maps client-side paths to views and gates navigation.
//
// The route table is fixed when the Router is built. Every navigation
// resolves the target path, runs the registered guards in order, and
// either completes, restarts at a guard's redirect, or fails. AuthGuard
// sends routes marked RequiresAuth to /login when no session token is
// stored; it only checks presence, never validity.
package router
