// Package buildinfo exposes version information injected at build time:
//
//	go build -ldflags "-X github.com/yndnr/mitaina-cli/internal/infra/buildinfo.Version=v0.3.0"
package buildinfo
