// Package middleware groups the HTTP middleware of the trigger server.
//
// # Components
//
//   - auth: API key validation protecting the sync routes.
//   - rayid: Assigns a Request ID (RayID) to every incoming request, stored in
//     the Fiber locals and echoed in the X-Ray-ID response header so the logs
//     of one request can be correlated.
//
// RayID is registered first so every later log line carries the ID.
package middleware
