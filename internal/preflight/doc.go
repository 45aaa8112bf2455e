// Package preflight provides readiness checks for the filesystem paths and
// property database that layoutctl depends on.
//
// These checks run in two contexts:
//   - "layoutctl serve" calls RunAll before binding the socket and refuses
//     to start when any check fails.
//   - "layoutctl doctor" prints every result as a table.
package preflight
