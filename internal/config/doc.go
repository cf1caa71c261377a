// Package config holds the pdfredact configuration: built-in defaults, the
// optional .pdfredact YAML file, environment overrides and validation.
//
// Precedence, lowest first: NewConfig defaults, the config file, the
// environment (including a .env file), command-line flags.
package config
