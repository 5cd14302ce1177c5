// SPDX-License-Identifier: GPL-2.0-only

package lzma

// Sink receives decoded output. It returns the number of leading bytes
// of p it accepted. A short return, including 0, signals backpressure:
// Process stops delivering further output and resumes from the exact
// undelivered byte on a later call, with no re-copying and no lost
// bytes.
type Sink func(p []byte) (n int)
