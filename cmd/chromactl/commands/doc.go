// Package commands defines the chromactl CLI and wires dependencies for subcommands.
//
// Commands
//
//   - list     Print the available collections
//   - delete   Delete a collection (default: the configured collection)
//   - create   Create a collection, or get it if it exists
//   - add      Put records into a collection
//   - get      Fetch records by id
//   - query    Nearest-neighbour query by embedding
//   - count    Number of records in a collection
//
// # Implementation
//
// The root command loads the layered configuration, applies flag overrides
// and builds the app (logger, collection store, services) before any
// subcommand runs. With no Chroma host configured the store is the persistent
// local database at --path.
package commands
