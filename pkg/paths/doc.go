// Package paths resolves the directories tubesort reads and writes.
//
// Directories follow the XDG base directory layout, each with a
// TUBESORT_*_DIR environment override:
//
//	config  $XDG_CONFIG_HOME/tubesort   TUBESORT_CONFIG_DIR
//	cache   $XDG_CACHE_HOME/tubesort    TUBESORT_CACHE_DIR
//	state   $XDG_STATE_HOME/tubesort    TUBESORT_STATE_DIR
//
// The log file lives in the state directory, cached solutions in the cache
// directory and the optional user config file in the config directory.
package paths
