// Package integrity provides health checks for the audit server.
//
// Unlike the 'audit' package which compares missions with installed
// liveries, this package validates the infrastructure audits rely on.
//
// # Checks Provided
//
//   - Roots: Checks that every installation root exists and can be listed.
//     Bucket roots must exist and hold at least one object under their prefix.
//   - History: Validates that the audit history table matches the
//     AuditRecord model (columns, declared types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/roots : Runs the installation root check.
//   - GET /integrity/history : Runs the history schema check.
package integrity
