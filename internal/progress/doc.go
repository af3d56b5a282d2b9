// Package progress defines how evaluation engines report their progress and
// how that progress reaches its consumers.
//
// Engines report through a ProgressCallback, one call per completed unit of
// work. The observer types decouple the engines from the sinks: a
// ChannelObserver feeds the orchestration pipeline, a LoggingObserver
// records milestones for debugging, and a NoOpObserver serves contexts
// where progress display is disabled. A ProgressSubject fans a single
// callback out to any combination of these.
package progress
