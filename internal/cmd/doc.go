// Package cmd implements the cobra commands behind the hrc binary.
package cmd
