// Package database reads the raw per-family bit database that tile types
// are built from.
//
// A database tree is laid out as:
//
//	<root>/<family>/tiletypes/<tiletype>.json   pips and fixed connections
//	<root>/<family>/<device>/tilegrid.json      tiles of one device
//	<root>/<family>/<device>/device.json        grid bounds (optional)
//
// [DB] memoizes every decoded artifact for the lifetime of the process, so
// each tile-type database is decoded at most once per session, and keeps the
// raw bytes in an optional [cache.Cache] between sessions. Concurrent
// requests for the same artifact share a single load.
//
// All names are validated before they are joined into paths; a name that
// could escape the database root is rejected with an INVALID_NAME error.
package database
