// Package main provides the entry point for mitaina-cli.
//
// The CLI is a terminal client for the mitaina posting service:
//
//   - Browse, create, react to and report posts
//   - Follow users and read your feed
//   - Manage your profile and notifications
//   - Sign up, log in and reset a forgotten password
//
// Usage:
//
//	mitaina-cli [command] [flags]
//	mitaina-cli post list --genre anime -o json
//	mitaina-cli open /u/taro
//
// With no command it starts an interactive session that renders pages
// by path, e.g. "/", "/p/12" or "/me".
package main
