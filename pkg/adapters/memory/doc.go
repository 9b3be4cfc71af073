// Package memory provides in-memory audio and input adapters. They back the
// console phone and every navigation test; hardware deployments feed the
// same Input from their keypad scanner.
package memory
