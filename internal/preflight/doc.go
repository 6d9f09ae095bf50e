// Package preflight provides readiness checks for the filesystem paths a
// conversion run depends on.
//
// These checks run in two contexts:
//   - "zwoparse convert" calls RunAll before parsing so a read-only export
//     directory fails fast instead of after every workout was parsed.
//   - "zwoparse check" prints every result as a table.
package preflight
