// Package typecheck receives generated builders, overlaid in memory, to be
// compiled against the runtime packages.
package typecheck
