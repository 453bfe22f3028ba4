package domain

import (
	"encoding/json"
	"testing"
)

func TestClientFrameDispatch(t *testing.T) {
	tests := []struct {
		name     string
		frame    string
		wantType string
	}{
		{"connect", `{"type":"Connect","room":"lobby","user":"alice"}`, MsgTypeConnect},
		{"send message", `{"type":"SendMessage","text":"hi"}`, MsgTypeSendMessage},
		{"unknown", `{"type":"Nonsense"}`, "Nonsense"},
		{"missing tag", `{"text":"hi"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var base BaseMessage
			if err := json.Unmarshal([]byte(tt.frame), &base); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if base.Type != tt.wantType {
				t.Fatalf("type = %q, want %q", base.Type, tt.wantType)
			}
		})
	}
}

func TestClientFrameDecodeError(t *testing.T) {
	var base BaseMessage
	if err := json.Unmarshal([]byte(`not json`), &base); err == nil {
		t.Fatal("expected decode error for malformed frame")
	}
}

func TestConnectFrameFields(t *testing.T) {
	var connect ConnectMessage
	frame := `{"type":"Connect","room":"lobby","user":"alice"}`
	if err := json.Unmarshal([]byte(frame), &connect); err != nil {
		t.Fatalf("unmarshal connect: %v", err)
	}
	if connect.Room != "lobby" || connect.User != "alice" {
		t.Fatalf("connect = %+v", connect)
	}
}

func TestBroadcastFramesCarryTag(t *testing.T) {
	tests := []struct {
		name     string
		frame    any
		wantType string
	}{
		{"message", NewMessageBroadcast("alice", "hi"), MsgTypeMessage},
		{"joined", NewJoinedBroadcast("alice"), MsgTypeJoined},
		{"left", NewLeftBroadcast("alice"), MsgTypeLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.frame)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var base BaseMessage
			if err := json.Unmarshal(data, &base); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if base.Type != tt.wantType {
				t.Fatalf("tag = %q, want %q", base.Type, tt.wantType)
			}
		})
	}
}
