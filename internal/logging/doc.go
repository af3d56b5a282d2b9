// Package logging defines the Logger interface the evaluation engines and
// the HTTP server write through. Constructors wrap zerolog with JSON or
// console output; NewNopLogger keeps tests quiet.
package logging
