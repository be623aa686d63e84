package bpfiledata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"gopkg.in/ghodss/yaml.v1"

	"github.com/baseplane/go-client-sdk/interfaces"
	"github.com/baseplane/go-client-sdk/subsystems"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldtime"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

const defaultSchema = "public"

// tableSnapshot maps each row's "id" property to the full row, for one table.
type tableSnapshot map[string]ldvalue.Value

type fileChangeSource struct {
	sink            subsystems.ChangeSink
	absFilePaths    []string
	reloaderFactory ReloaderFactory
	loggers         ldlog.Loggers
	isInitialized   bool
	lastSnapshot    map[string]tableSnapshot
	lastSchema      string
	lock            sync.Mutex
	readyCh         chan<- struct{}
	readyOnce       sync.Once
	closeOnce       sync.Once
	closeReloaderCh chan struct{}
}

func newFileChangeSourceImpl(
	context subsystems.ClientContext,
	sink subsystems.ChangeSink,
	filePaths []string,
	reloaderFactory ReloaderFactory,
) (subsystems.ChangeSource, error) {
	if sink == nil {
		return nil, errors.New("the file data ChangeSource can only be used within a change subscription")
	}
	abs, err := absFilePaths(filePaths)
	if err != nil {
		// COVERAGE: there's no reliable cross-platform way to simulate an invalid path in unit tests
		return nil, err
	}

	fs := &fileChangeSource{
		sink:            sink,
		absFilePaths:    abs,
		reloaderFactory: reloaderFactory,
		loggers:         context.GetLogging().Loggers,
	}
	fs.loggers.SetPrefix("FileChangeSource:")
	return fs, nil
}

func (fs *fileChangeSource) IsInitialized() bool {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	return fs.isInitialized
}

func (fs *fileChangeSource) Start(closeWhenReady chan<- struct{}) {
	fs.readyCh = closeWhenReady
	fs.reload()

	// If there is no reloader, then we signal readiness immediately regardless of whether the
	// data load succeeded or failed.
	if fs.reloaderFactory == nil {
		fs.signalStartComplete(fs.IsInitialized())
		return
	}

	// If there is a reloader, and if we haven't yet successfully loaded data, then the
	// readiness signal will happen the first time we do get valid data (in reload).
	fs.closeReloaderCh = make(chan struct{})
	err := fs.reloaderFactory(fs.absFilePaths, fs.loggers, fs.reload, fs.closeReloaderCh)
	if err != nil {
		fs.loggers.Errorf("Unable to start reloader: %s", err)
	}
}

// reload rereads all of the configured source files and delivers the difference between the
// previous snapshot and the new one as change events. If any file cannot be loaded or parsed,
// the previous snapshot is kept and no events are delivered.
func (fs *fileChangeSource) reload() {
	filesData := make([]fileData, 0)
	for _, path := range fs.absFilePaths {
		data, err := readFile(path)
		if err != nil {
			fs.loggers.Errorf("Unable to load rows: %s [%s]", err, path)
			fs.sink.UpdateStatus(interfaces.ChangeSourceStateInterrupted,
				interfaces.ChangeSourceErrorInfo{
					Kind:    interfaces.ChangeSourceErrorKindInvalidData,
					Message: err.Error(),
					Time:    time.Now(),
				})
			return
		}
		filesData = append(filesData, data)
	}
	schema, snapshot, err := mergeFileData(filesData...)
	if err != nil {
		fs.loggers.Error(err)
		fs.sink.UpdateStatus(interfaces.ChangeSourceStateInterrupted,
			interfaces.ChangeSourceErrorInfo{
				Kind:    interfaces.ChangeSourceErrorKindInvalidData,
				Message: err.Error(),
				Time:    time.Now(),
			})
		return
	}

	fs.lock.Lock()
	oldSnapshot := fs.lastSnapshot
	fs.lastSnapshot = snapshot
	fs.lastSchema = schema
	fs.isInitialized = true
	fs.lock.Unlock()

	for _, event := range diffSnapshots(schema, oldSnapshot, snapshot) {
		fs.sink.Record(event)
	}
	fs.sink.UpdateStatus(interfaces.ChangeSourceStateValid, interfaces.ChangeSourceErrorInfo{})
	fs.signalStartComplete(true)
}

func (fs *fileChangeSource) signalStartComplete(succeeded bool) {
	fs.readyOnce.Do(func() {
		fs.lock.Lock()
		fs.isInitialized = succeeded
		fs.lock.Unlock()
		if fs.readyCh != nil {
			close(fs.readyCh)
		}
	})
}

// Close is called automatically when the subscription or the client is closed.
func (fs *fileChangeSource) Close() error {
	fs.closeOnce.Do(func() {
		if fs.closeReloaderCh != nil {
			close(fs.closeReloaderCh)
		}
		fs.sink.UpdateStatus(interfaces.ChangeSourceStateOff, interfaces.ChangeSourceErrorInfo{})
	})
	return nil
}

func absFilePaths(paths []string) ([]string, error) {
	absPaths := make([]string, 0)
	for _, p := range paths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			// COVERAGE: there's no reliable cross-platform way to simulate an invalid path in unit tests
			return nil, fmt.Errorf("unable to determine absolute path for '%s'", p)
		}
		absPaths = append(absPaths, absPath)
	}
	return absPaths, nil
}

type fileData struct {
	Schema string                     `json:"schema"`
	Tables map[string][]ldvalue.Value `json:"tables"`
}

func readFile(path string) (fileData, error) {
	var data fileData
	rawData, err := os.ReadFile(path) //nolint:gosec // G304: ok to read file into variable
	if err != nil {
		return data, fmt.Errorf("unable to read file: %s", err)
	}
	if detectJSON(rawData) {
		err = json.Unmarshal(rawData, &data)
	} else {
		err = yaml.Unmarshal(rawData, &data)
	}
	if err != nil {
		err = fmt.Errorf("error parsing file: %s", err)
	}
	return data, err
}

func detectJSON(rawData []byte) bool {
	// A valid JSON file for our purposes must be an object, i.e. it must start with '{'
	return strings.HasPrefix(strings.TrimLeftFunc(string(rawData), unicode.IsSpace), "{")
}

func mergeFileData(allFileData ...fileData) (string, map[string]tableSnapshot, error) {
	schema := defaultSchema
	all := make(map[string]tableSnapshot)
	for _, d := range allFileData {
		if d.Schema != "" {
			schema = d.Schema
		}
		for table, rows := range d.Tables {
			if all[table] == nil {
				all[table] = make(tableSnapshot)
			}
			for _, row := range rows {
				key := row.GetByKey("id")
				if key.IsNull() {
					return "", nil, fmt.Errorf("a row in table '%s' has no \"id\" property", table)
				}
				keyStr := key.JSONString()
				if _, exists := all[table][keyStr]; exists {
					return "", nil, fmt.Errorf("row '%s' in table '%s' is specified by multiple files",
						keyStr, table)
				}
				all[table][keyStr] = row
			}
		}
	}
	return schema, all, nil
}

// diffSnapshots computes the insert, update, and delete events that transform the old snapshot
// into the new one. Events are ordered by table name and then by row key, so that repeated loads
// of the same files produce the same sequence.
func diffSnapshots(schema string, oldData, newData map[string]tableSnapshot) []interfaces.ChangeEvent {
	now := ldtime.UnixMillisNow()
	var events []interfaces.ChangeEvent

	tables := make(map[string]bool)
	for table := range oldData {
		tables[table] = true
	}
	for table := range newData {
		tables[table] = true
	}
	tableNames := make([]string, 0, len(tables))
	for table := range tables {
		tableNames = append(tableNames, table)
	}
	sort.Strings(tableNames)

	for _, table := range tableNames {
		oldRows, newRows := oldData[table], newData[table]
		keys := make(map[string]bool)
		for key := range oldRows {
			keys[key] = true
		}
		for key := range newRows {
			keys[key] = true
		}
		keyNames := make([]string, 0, len(keys))
		for key := range keys {
			keyNames = append(keyNames, key)
		}
		sort.Strings(keyNames)

		for _, key := range keyNames {
			oldRow, hadOld := oldRows[key]
			newRow, hasNew := newRows[key]
			event := interfaces.ChangeEvent{Schema: schema, Table: table, CommitTime: now}
			switch {
			case hadOld && hasNew:
				if oldRow.Equal(newRow) {
					continue
				}
				event.Action = interfaces.ChangeActionUpdate
				event.Record = newRow
				event.OldRecord = oldRow
			case hasNew:
				event.Action = interfaces.ChangeActionInsert
				event.Record = newRow
			default:
				event.Action = interfaces.ChangeActionDelete
				event.OldRecord = oldRow
			}
			events = append(events, event)
		}
	}
	return events
}
