// Package resultlog writes the executor's result lines to a local file,
// output.txt next to the event store unless RESULTLOG_PATH says otherwise.
// The file is truncated when the process starts.
package resultlog
