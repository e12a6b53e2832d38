// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - TimestampFetcher: Modification time of a slide file
//   - ContentFetcher: Document text of a slide file
//   - SlideScanner: Discovers the slides of a project
//   - ErrorReporter: Sink for non-fatal per-path and load errors
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DirectoryWatcher: Without it, new or deleted slides appear only on manual rescan.
//   - SessionStore: Without it, the last selected slide is not remembered.
//   - Metrics: Without it, nothing is recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
