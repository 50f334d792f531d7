// Package model defines the core data structures used throughout
// podcast-downloader and the rules that turn them into file paths.
//
// # Feed and Episode
//
// Feed carries the channel metadata and a lazy sequence of Episodes.
// Episode fields are all optional: the empty string means "absent".
// Defaults are resolved late:
//
//	ep.ResolvedTitle()  // "unknown_item" when the item had no title
//	DatePrefix(ep.PubDate) // "" when the date is missing or invalid
//
// # Destinations
//
// NewDestination computes where an enclosure is saved:
//
//	{output}/{channel}/{YYYY-MM-DD_}-{title}/{file name from URL}
//
// Path components are sanitized so a title can never escape its folder.
// Two episodes with the same title, date and file name map to the same
// destination; the downloader keeps the first one.
package model
