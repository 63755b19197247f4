// Package types defines the entities, report rows, configuration and standard
// errors shared by the storeroom store, shell and CLI.
package types
