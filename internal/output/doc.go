// Package output provides structured output and error handling for the
// ghnotes CLI.
//
// It defines the exit code contract (success, user error, system error, auth
// error), the ExitError type that carries codes through the cobra command
// tree, and a Printer that renders results in either JSON or styled
// human-readable form.
package output
