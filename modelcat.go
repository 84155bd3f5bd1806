// Package modelcat extracts structured model-catalog records from the raw
// HTML and XML served by third-party model listing pages. It normalizes
// inconsistently formatted markup into canonical records (id, name,
// organization, metrics, task tags) and deduplicates them into a stable
// catalog across heterogeneous sources.
//
// This package contains domain types, interfaces, and the pure extraction
// core (keyword tagging, magnitude parsing, record assembly) following Ben
// Johnson's Standard Package Layout. Implementations live in subdirectories
// named after their primary dependency (e.g., goquery/, etree/, rod/).
package modelcat
