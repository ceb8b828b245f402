package chat

import (
	"encoding/json"
	"testing"

	"PairChat/tools/decode"
)

func TestParseFrameInit(t *testing.T) {
	f, err := ParseFrame([]byte(`{"type":"init","userId":7}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Type != FrameInit {
		t.Fatalf("type = %q", f.Type)
	}
	p, err := decode.Struct[InitPayload](f.Payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.UserID != 7 {
		t.Fatalf("userId = %d, want 7", p.UserID)
	}
}

func TestParseFrameTyping(t *testing.T) {
	f, err := ParseFrame([]byte(`{"type":"typing","conversationId":5,"isTyping":true}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p, err := decode.Struct[TypingPayload](f.Payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ConversationID != 5 || !p.IsTyping {
		t.Fatalf("payload = %+v", p)
	}
}

func TestParseFrameMalformed(t *testing.T) {
	cases := [][]byte{
		[]byte(`not json`),
		[]byte(`{"userId":7}`), // missing type
		[]byte(`{"type":42}`),  // non-string type
		[]byte(`[1,2,3]`),      // wrong shape
	}
	for _, raw := range cases {
		if _, err := ParseFrame(raw); err == nil {
			t.Fatalf("expected parse error for %s", raw)
		}
	}
}

func TestTypingFrameRoundTrip(t *testing.T) {
	raw, err := BuildTyping(1, 5, true).Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["type"] != "typing" {
		t.Fatalf("type = %v", m["type"])
	}
	if m["userId"].(float64) != 1 || m["conversationId"].(float64) != 5 || m["isTyping"] != true {
		t.Fatalf("payload = %v", m)
	}
}
