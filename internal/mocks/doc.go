// Package mocks provides hand-rolled test doubles for the service interfaces.
// Each mock exposes optional Fn fields for per-test behavior and falls back
// to simple default-value fields when no function is set.
package mocks
