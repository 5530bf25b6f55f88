// Package testutil provides shared fixtures for tubesort tests: an isolated
// environment with its own config, cache and state directories, sample
// puzzles, and assertions over move sequences.
package testutil
