package bpfiledata

import (
	"github.com/baseplane/go-client-sdk/subsystems"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// ReloaderFactory is a function type used with ChangeSourceBuilder.Reloader, to specify a
// mechanism for detecting when data files should be reloaded. Its standard implementation is
// bpfilewatch.WatchFiles.
type ReloaderFactory func(paths []string, loggers ldlog.Loggers, reload func(), closeCh <-chan struct{}) error

// ChangeSourceBuilder is a builder for configuring the file-based change source.
//
// Obtain an instance of this type by calling ChangeSource(). After calling its methods to
// specify any desired custom settings, pass it to bpclient.Client.SubscribeChanges.
//
// Builder calls can be chained, for example:
//
//	bpfiledata.ChangeSource().FilePaths("file1").FilePaths("file2")
type ChangeSourceBuilder struct {
	filePaths       []string
	reloaderFactory ReloaderFactory
}

// ChangeSource returns a configurable builder for a file-based change source.
func ChangeSource() *ChangeSourceBuilder {
	return &ChangeSourceBuilder{}
}

// FilePaths specifies the input data files. The paths may be any number of absolute or relative
// file paths.
func (b *ChangeSourceBuilder) FilePaths(paths ...string) *ChangeSourceBuilder {
	b.filePaths = append(b.filePaths, paths...)
	return b
}

// Reloader specifies a mechanism for reloading data files.
//
// It is normally used with the bpfilewatch package, as follows:
//
//	sub, err := client.SubscribeChanges(
//	    bpfiledata.ChangeSource().
//	        FilePaths(filePaths...).
//	        Reloader(bpfilewatch.WatchFiles),
//	)
func (b *ChangeSourceBuilder) Reloader(reloaderFactory ReloaderFactory) *ChangeSourceBuilder {
	b.reloaderFactory = reloaderFactory
	return b
}

// Build is called internally by the SDK.
func (b *ChangeSourceBuilder) Build(context subsystems.ClientContext) (subsystems.ChangeSource, error) {
	return newFileChangeSourceImpl(context, context.GetChangeSink(), b.filePaths, b.reloaderFactory)
}
