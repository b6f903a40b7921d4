// Package viewer keeps a single browser tab dedicated to playing reels.
//
// The Controller remembers the tab's handle under the viewerTabId key and
// reuses that tab for every Show. When the stored tab has been closed the
// handle is treated as stale and a fresh tab is created in its place.
package viewer
