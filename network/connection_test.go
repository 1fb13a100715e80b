package network

import (
	"bytes"
	"io"
	"testing"
)

func TestEncodeDecodePacket(t *testing.T) {
	payload := []byte(`{"code":"abc123"}`)

	frame := EncodePacket(MsgTypeConfirm, payload)
	if len(frame) != 4+len(payload) {
		t.Fatalf("Expected frame of %d bytes, got %d", 4+len(payload), len(frame))
	}

	packet, err := DecodePacket(frame)
	if err != nil {
		t.Fatalf("DecodePacket failed: %v", err)
	}
	if packet.MsgID != MsgTypeConfirm {
		t.Errorf("Expected msg ID %d, got %d", MsgTypeConfirm, packet.MsgID)
	}
	if int(packet.Length) != len(payload) {
		t.Errorf("Expected length %d, got %d", len(payload), packet.Length)
	}
	if !bytes.Equal(packet.Data, payload) {
		t.Errorf("Payload corrupted: %q", packet.Data)
	}
}

func TestEncodePacket_EmptyPayload(t *testing.T) {
	frame := EncodePacket(MsgTypeHeartbeat, nil)

	packet, err := DecodePacket(frame)
	if err != nil {
		t.Fatalf("DecodePacket failed: %v", err)
	}
	if packet.MsgID != MsgTypeHeartbeat || packet.Length != 0 {
		t.Errorf("Got msgID=%d length=%d, expected %d/0", packet.MsgID, packet.Length, MsgTypeHeartbeat)
	}
}

func TestDecodePacket_Truncated(t *testing.T) {
	cases := [][]byte{
		nil,
		{0x00},
		{0x00, 0x65, 0x00},
		// Header claims 4 payload bytes, only 2 present.
		{0x00, 0x65, 0x00, 0x04, 0xaa, 0xbb},
	}

	for _, frame := range cases {
		if _, err := DecodePacket(frame); err != io.ErrShortBuffer {
			t.Errorf("DecodePacket(%v): expected io.ErrShortBuffer, got %v", frame, err)
		}
	}
}
