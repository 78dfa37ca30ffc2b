// Package store reads the wiki's semantic data from PostgreSQL.
//
// Store implements the property store, category index, page source and job queue
// collaborators over the tables in schema.sql. Every read is a fresh query.
//
// Migrate and Reset manage the schema; Import loads a YAML fixture of pages,
// categories and property values for local development and tests.
package store
