package rvideo

import (
	"bytes"
	"net"
	"testing"
	"time"

	"rvideo/internal/wire"
)

func TestCreateStreamSendAndDeregister(t *testing.T) {
	h, err := CreateStream(Luma8, 2, 2)
	if err != nil {
		t.Fatalf("CreateStream: %v", err)
	}
	defer h.Deregister()

	if err := h.Send(Frame{Picture: []byte{1, 2, 3, 4}}); err != nil {
		t.Errorf("Send with correctly sized picture: %v", err)
	}
	if err := h.Send(Frame{Picture: []byte{1, 2, 3}}); err == nil {
		t.Error("Send with wrong-sized picture should fail")
	}
}

func TestEndToEndSingleClientSingleStream(t *testing.T) {
	h, err := CreateStream(Luma8, 2, 2)
	if err != nil {
		t.Fatalf("CreateStream: %v", err)
	}
	defer h.Deregister()

	cfg := DefaultConfig()
	cfg.Server.BindAddr = "127.0.0.1:0"
	cfg.Server.IdleTakeTimeout = 50 * time.Millisecond

	srv, err := Serve(cfg)
	if err != nil {
		t.Fatalf("Serve: %v", err)
	}
	defer srv.Close()

	c, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	greetings := make([]byte, 3)
	if _, err := c.Read(greetings); err != nil {
		t.Fatalf("read greetings: %v", err)
	}

	sel, err := wire.EncodeStreamSelect(h.ID(), 30)
	if err != nil {
		t.Fatalf("EncodeStreamSelect: %v", err)
	}
	if _, err := c.Write(sel[:]); err != nil {
		t.Fatalf("write stream select: %v", err)
	}

	info := make([]byte, wire.StreamInfoSize)
	if _, err := c.Read(info); err != nil {
		t.Fatalf("read stream info: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && srv.ConnectionCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	if err := h.Send(Frame{Picture: []byte{0xAA, 0xBB, 0xCC, 0xDD}}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	metaHeader := make([]byte, 4)
	if _, err := c.Read(metaHeader); err != nil {
		t.Fatalf("read meta header: %v", err)
	}
	if !bytes.Equal(metaHeader, []byte{0, 0, 0, 0}) {
		t.Errorf("meta header = % x, want zero length", metaHeader)
	}
	picHeader := make([]byte, 4)
	c.Read(picHeader)
	pic := make([]byte, 4)
	if _, err := c.Read(pic); err != nil {
		t.Fatalf("read picture: %v", err)
	}
	if !bytes.Equal(pic, []byte{0xAA, 0xBB, 0xCC, 0xDD}) {
		t.Errorf("picture = % x, want AA BB CC DD", pic)
	}
}
