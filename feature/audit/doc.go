// Package audit checks missions against the installed liveries.
//
// The Service ties the mission extractor, the installation scanner and the
// reconciler together. Missions come from a local path, an s3://bucket/key
// URL or an uploaded payload; installation roots are scanned once per cache
// TTL and shared by every audit.
//
// # HTTP Endpoints
//
//   - GET /liveries/installed : Installed liveries of every configured root.
//   - DELETE /liveries/installed/cache : Forces the next request to rescan.
//   - POST /liveries/extract : Required liveries of the uploaded mission.
//   - POST /liveries/audit : Audit report of the uploaded mission.
//   - GET /liveries/history : Recent audits (?limit=N), when a database is configured.
//
// Uploads are the raw .miz archive or mission script as request body.
// An unmet audit is still a successful request; the report status says
// "failed".
//
// # History
//
// With a database configured every audit is stored as an AuditRecord.
// Recording failures are logged and never fail the audit itself.
package audit
