// Package browser implements viewer.Host on top of the Chrome DevTools
// Protocol.
//
// reelq never launches Chrome. It attaches to a browser started with
// --remote-debugging-port and drives tabs through chromedp: target listing,
// creation and activation go over a browser-level connection, and
// navigation attaches to the existing page target.
package browser
