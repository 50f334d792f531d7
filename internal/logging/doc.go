// Package logging builds the structured loggers used for diagnostics.
//
// User-facing episode lines are not logs; they travel as
// download.ProgressEvent values. Loggers created here carry the
// supporting detail (feed statistics, HTTP failures, lock paths) and are
// written to stderr in console or JSON form.
package logging
