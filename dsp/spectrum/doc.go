// Package spectrum provides single-bin and multi-bin Goertzel frequency
// analysis, used where only a handful of DFT bins are needed rather than a
// full transform.
package spectrum
