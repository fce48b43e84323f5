// Package config handles configuration loading, parsing, and validation.
// Settings come from defaults, an optional config file, and LANGPORTAL_*
// environment variables, and are validated before anything starts. It
// provides type-safe access to the server, database, cache, auth, and
// admin settings while keeping configuration details out of business logic.
package config
