// Package output writes the per-run result log.
//
// Each run gets a fresh file named from the scan parameters and a
// timestamp, with a header line, one `<identifier> - FREE|TAKEN` line per
// checked identifier (ERROR lines carry the failure message), and a summary
// footer. Writes are mutex-serialized, one full line at a time.
package output
