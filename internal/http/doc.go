// Package http provides the HTTP client used to fetch episode enclosures
// and channel artwork.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Whole-body downloads with optional progress tracking
//   - Typed errors for non-200 responses
//
// # Basic Usage
//
//	client := http.NewClient("podcast-downloader", 0)
//
//	body, err := client.DownloadBytes(ctx, mp3URL, func(written, total int64) {
//	    fmt.Printf("%d/%d\n", written, total)
//	})
//	var statusErr *http.StatusError
//	if errors.As(err, &statusErr) {
//	    fmt.Println("server said", statusErr.Code)
//	}
package http
