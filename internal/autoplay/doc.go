// Package autoplay advances the viewer through the queue on a fixed interval.
package autoplay
