// Package config handles application configuration loading and validation.
//
// Configuration is loaded from itinerary-filter.yml (or config.yml) and
// validated using struct tags. Values from a .env file and the process
// environment override the file. Several itinerary sources can be declared
// under feeds and selected by name.
package config
