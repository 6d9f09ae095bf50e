// Package intervals turns free-form interval rows such as
// "10x 3min @ 100% FTP, 1min @ 55% FTP" into workout.Interval values.
//
// Parsing runs in three layers:
//   - numeric field parsers for durations ("1hr 30min 10sec"), power
//     ("95%", "200W") and cadence ("90rpm", "85/95rpm,")
//   - a classifier that walks a fixed-priority rule table (free ride, then
//     from/to ranges, then on/off pairs, then steady state) and picks the
//     variant parser for a row
//   - the four variant parsers plus FromRows, which parses a whole workout and
//     reassembles the results in row order
//
// Parsers fail fast. FromRows keeps every row that parsed and reports the
// failing rows through a RowErrors aggregate so callers choose the batch
// policy.
package intervals
