// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Services receive their dependencies through constructor injection and
// return sentinel errors for expected failure conditions; the API layer maps
// those to HTTP status codes. Services never depend on specific storage
// implementations, only on the store interfaces.
package service
