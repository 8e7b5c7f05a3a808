// Package arepo offers a generic, thread safe store of uniquely identified entities.
//
// Every operation reports failures as errors wrapping one of the sentinel errors
// ErrDuplicateKey, ErrNotFound or ErrInvalidValue. Callers decide with errors.Is
// whether to log and continue or to abort.
//
// A MemoryRepository keeps its entities in insertion order. It can be extended with new
// methods by embedding it, see the examples. A Store persists the full list of entities
// after each change, so a later session can load it again. This is intended for small
// data sets and local demos: every change rewrites the whole document.
//
// NewTracedRepository and NewMeteredRepository decorate any Repository with
// OpenTelemetry spans and metrics.
package arepo
