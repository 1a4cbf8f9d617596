package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannel_DropsWhenFull(t *testing.T) {
	c := NewChannel(1)
	c.Notify(Info("first"))
	c.Notify(Info("second"))

	assert.Equal(t, "first", (<-c.C()).Message)
	select {
	case n := <-c.C():
		t.Fatalf("unexpected notice %v", n)
	default:
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Notify(Error("boom"))
	got := r.Notices()
	assert.Len(t, got, 1)
	assert.Equal(t, "[error] boom", got[0].String())
}

func TestSwitch(t *testing.T) {
	var buf bytes.Buffer
	var rec Recorder
	s := NewSwitch(&Writer{W: &buf})
	s.Notify(Info("to writer"))
	s.Set(&rec)
	s.Notify(Info("to recorder"))
	s.Set(nil)
	s.Notify(Info("dropped"))

	assert.Equal(t, "[info] to writer\n", buf.String())
	assert.Equal(t, []Notice{Info("to recorder")}, rec.Notices())
}
