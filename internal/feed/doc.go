// Package feed loads RSS podcast feeds and extracts their episodes.
//
// Loading and extraction are separate steps:
//
//  1. LoadFile (or Parse) turns the XML document into a tree of Nodes.
//  2. Extract walks that tree and returns a model.Feed whose Episodes
//     field lazily yields one model.Episode per "item" element.
//
// # Usage
//
//	root, err := feed.LoadFile("podcast.xml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f := feed.Extract(root)
//	for ep := range f.Episodes {
//	    fmt.Println(ep.Title, ep.EnclosureURL)
//	}
//
// # Tree Walk
//
// Items are located with Node.Descendants, an explicit pre-order walk, so
// feeds that nest items below extra wrapper elements are still found.
// Lookups such as Child and Find only match un-namespaced elements;
// namespaced extensions (itunes:author, itunes:image) are read with ChildNS.
package feed
