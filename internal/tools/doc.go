// Package tools wraps the external collaborators the pipeline shells out
// to: the lenient linter and strict checker used by validation, and the
// mutator script that performs the actual import removal during cleanup.
//
// Every collaborator is treated as fallible, never as a thrown exception.
// A tool that runs and exits non-zero produced a structured result with
// status "issues_found"; only a tool that cannot be launched at all is an
// error, and deciding what either outcome means is the caller's job.
package tools
