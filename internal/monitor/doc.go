// Package monitor is the monitoring sink for the configuration lifecycle:
// it records the event-log directory pushed to it on logger reloads and
// exports Prometheus metrics about configuration loads.
package monitor
