package realtime

import (
	"errors"

	"github.com/baseplane/go-client-sdk/interfaces"

	"github.com/launchdarkly/go-jsonstream/v3/jreader"
	"github.com/launchdarkly/go-sdk-common/v3/ldtime"
)

// parseChangeEvent reads the JSON envelope of a streamed change event. The action comes from the
// SSE event name rather than the payload.
func parseChangeEvent(action string, data []byte) (interfaces.ChangeEvent, error) {
	event := interfaces.ChangeEvent{Action: interfaces.ChangeAction(action)}
	r := jreader.NewReader(data)
	for obj := r.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "schema":
			event.Schema = r.String()
		case "table":
			event.Table = r.String()
		case "record":
			event.Record.ReadFromJSONReader(&r)
		case "old_record":
			event.OldRecord.ReadFromJSONReader(&r)
		case "commit_time":
			event.CommitTime = ldtime.UnixMillisecondTime(r.Int())
		}
	}
	if err := r.Error(); err != nil {
		return event, err
	}
	if event.Table == "" {
		return event, errors.New("change event did not specify a table")
	}
	return event, nil
}
