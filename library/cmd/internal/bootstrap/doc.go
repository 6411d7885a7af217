// Package bootstrap wires the loan store and its observability adapters for the binaries under library/cmd.
package bootstrap
