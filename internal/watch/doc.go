// Package watch rebuilds schema files when they change on disk.
//
// A Watcher subscribes to the directories holding its inputs, coalesces
// bursts of fsnotify events (editors tend to write a file several times on
// save) and runs buildpipeline.Build once per burst. Every rebuild is logged
// through zerolog.
package watch
