// Package config loads the eventd YAML configuration file: listener
// addresses, data directory, logging and the list of channels to create.
package config
