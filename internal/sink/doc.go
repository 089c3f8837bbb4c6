// Package sink persists rendered artifacts.
//
// FileSink writes into the target package directory (or an override
// directory), MemorySink keeps artifacts in memory and CheckSink compares
// them with the files already on disk without writing anything.
package sink
