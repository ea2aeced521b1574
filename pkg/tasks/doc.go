// Package tasks holds the closed set of task variants the service executes:
// sleep waits a fixed time, fetch performs an HTTP GET and random draws a
// number. NewRegistry wires all three into a queue.Registry.
package tasks
