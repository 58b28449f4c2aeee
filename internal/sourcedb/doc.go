// Package sourcedb provides read-only access to the relational catalog
// the ETL pipeline polls for changes. It exposes the modified-row and
// hydration queries the producer needs and owns the connection pool
// configuration shared by every query.
package sourcedb
