// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Writing downloaded episodes to disk
//   - Checking whether a destination already exists
//   - Path component sanitization for cross-platform compatibility
//   - Directory creation
//   - Cover art resizing and JPEG conversion
//
// # File Operations
//
//	if !ioutils.FileExists(dest) {
//	    err := ioutils.EnsureDir(filepath.Dir(dest))
//	    err = ioutils.WriteFile(ctx, dest, body)
//	}
//
// # Path Component Sanitization
//
//	safe := ioutils.SanitizeFileName("Episode 1/2") // Returns "Episode 1_2"
//
// # Cover Art
//
//	svc := ioutils.NewImageService()
//	jpeg, err := svc.PrepareCoverArt(ctx, channelImage, 1000)
package ioutils
