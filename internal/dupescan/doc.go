// Package dupescan implements duplicate file detection over a directory tree.
//
// Detection runs in two phases: the tree is walked with fastwalk and every
// regular file at or above a minimum size is bucketed by exact byte length,
// then buckets with colliding sizes are verified by chunked content hashing.
// Only groups of two or more files with identical size and digest survive
// into the result.
package dupescan
