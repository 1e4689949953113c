// Package dbcapabilities provides a shared registry describing the
// capabilities of databases supported by databridge. Components import this
// package to make decisions based on uniform metadata (paradigm, SQL
// support, stats support, dump tooling) instead of comparing database name
// strings in every call path.
//
// Minimal usage example:
//
//	import "github.com/databridge-io/databridge/pkg/dbcapabilities"
//
//	func canBackup(db string) bool {
//	    id, ok := dbcapabilities.ParseID(db)
//	    if !ok {
//	        return false
//	    }
//	    return dbcapabilities.MustGet(id).DumpTool != ""
//	}
package dbcapabilities
