// Package orchestrator wires the console pipeline: configuration, the OpenAPI
// document, the HTTP client, the surface and the renderer registry. Both
// binaries build on it so a single constructor call yields a working console.
package orchestrator
