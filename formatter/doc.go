// Package formatter renders itinerary lists and index query results.
//
// This package is organized into:
// - rows.go: conversion of itineraries and index entries into rows
// - text.go: console table rendering
// - json.go: JSON serialization
// - yaml.go: YAML serialization
//
// Rendering computes characteristics for every row; an itinerary whose
// characteristics cannot be computed aborts rendering.
package formatter
