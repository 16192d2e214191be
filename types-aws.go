package main

import (
	"encoding/json"
	"fmt"
)

// IoTRuleEvent is what the topic rule
//   SELECT * as message, topic() as topic FROM '$aws/rules/GetUploadURL/+'
// hands to the function. A nil Topic or Message means the key was absent or null.
type IoTRuleEvent struct {
	Topic   *string               `json:"topic"`
	Message *UploadRequestMessage `json:"message"`
}

// UploadRequestMessage records whether "file" was sent at all. A null or
// non-string file still counts as sent and leaves File empty.
type UploadRequestMessage struct {
	File    string
	HasFile bool
}

func (m *UploadRequestMessage) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	raw, ok := fields["file"]
	if !ok {
		return nil
	}
	m.HasFile = true
	if err := json.Unmarshal(raw, &m.File); err != nil {
		Debug.Printf("Ignoring non-string file %s: %v", raw, err)
		m.File = ""
	}
	return nil
}

func (e IoTRuleEvent) String() string {
	topic := "<absent>"
	if e.Topic != nil {
		topic = fmt.Sprintf("%q", *e.Topic)
	}
	file := "<absent>"
	if e.Message != nil && e.Message.HasFile {
		file = fmt.Sprintf("%q", e.Message.File)
	}
	return fmt.Sprintf("topic=%s file=%s", topic, file)
}
