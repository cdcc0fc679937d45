// Package domain contains the core business entities of the blog service:
// users and posts, together with their validation rules and the common
// domain error taxonomy. Entities here are plain values with no knowledge
// of persistence or transport.
package domain
