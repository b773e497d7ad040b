// Package server holds the HTTP trigger server configuration.
//
// The serve command builds the Fiber application itself; this package only
// defines the settings it reads: the listen port, the API key protecting the
// trigger routes and the graceful shutdown timeout.
package server
