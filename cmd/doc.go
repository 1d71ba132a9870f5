// The model-router binary loads configuration, wires the transport clients
// to the dispatch core, and serves the inference API with periodic circuit
// reconciliation in the background.
package main
