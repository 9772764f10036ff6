// Package log provides structured logging helpers for importsweep.
// Its handler rewrites absolute corpus paths into corpus-relative form so
// log output is stable across machines and does not leak local directory
// layout into shared session artifacts.
package log
