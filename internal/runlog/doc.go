// Package runlog persists a ledger of import runs in SQLite.
//
// Every clean invocation appends one row recording the source archive,
// output locations, timings, and artist/photo/failure counts, so past
// imports can be reviewed with the runs command. The database lives in the
// log directory and is append-only; schema changes bump the version in
// schema.sql and require clearing the ledger.
package runlog
