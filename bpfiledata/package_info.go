// Package bpfiledata provides a file-based change source for the SDK.
//
// This allows the SDK client to deliver row change events from local files instead of
// connecting to the realtime service, which is useful in testing and in environments with no
// network access. To use it, pass a builder from ChangeSource() to
// bpclient.Client.SubscribeChanges:
//
//	sub, err := client.SubscribeChanges(
//	    bpfiledata.ChangeSource().FilePaths("./testdata/rows.yaml"),
//	)
//
// Each file holds a snapshot of table contents, in either JSON or YAML:
//
//	schema: public
//	tables:
//	  orders:
//	    - id: 1
//	      status: open
//	    - id: 2
//	      status: shipped
//
// When the files are first loaded, every row is delivered as an insert event. If a reloader is
// configured with the builder's Reloader method (normally bpfilewatch.WatchFiles), the files are
// reread when they change, and the difference between the old and new snapshots is delivered as
// insert, update, and delete events. Rows are matched between snapshots by their "id" property.
package bpfiledata
