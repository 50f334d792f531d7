// Package download provides the orchestration that turns a feed file into
// downloaded episodes.
//
// # Manager
//
// The Manager runs a single, sequential pass:
//
//  1. Load and parse the feed document
//  2. Lock the output directory
//  3. For each episode, in document order:
//     derive the destination, skip it if it already exists, otherwise
//     download it in one GET and write it to disk
//  4. Optionally tag MP3 files and write a channel playlist
//
// # Basic Usage
//
//	manager := download.NewManager(settings, logger, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	summary, err := manager.Run(ctx, "podcast.xml")
//	if err != nil {
//	    log.Fatal(err) // feed unreadable, lock held, or cancelled
//	}
//	fmt.Println(summary.Downloaded, summary.Failed)
//
// # Failures
//
// A failed episode never stops the run. Non-200 responses are reported as
//
//	Failed to download: <url> (Status code: <n>)
//
// and the next episode is processed. There is no retry.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package download
