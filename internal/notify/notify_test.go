package notify

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestConsolePlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.Notify(Info, "nothing running")
	c.Notify(Warn, "stop failed")
	c.Notify(Error, "no terminal")
	assert.Equal(t, "info: nothing running\nwarn: stop failed\nerror: no terminal\n", buf.String())
}

func TestLogSinkLevels(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLog(zerolog.New(&buf))
	sink.Notify(Warn, "careful")
	sink.Notify(Info, "hello")
	assert.Contains(t, buf.String(), `{"level":"warn","message":"careful"}`)
	assert.Contains(t, buf.String(), `{"level":"info","message":"hello"}`)
}

func TestFuncAndDiscard(t *testing.T) {
	var got []Level
	Func(func(l Level, _ string) { got = append(got, l) }).Notify(Error, "x")
	Discard.Notify(Error, "ignored")
	assert.Equal(t, []Level{Error}, got)
	assert.Equal(t, "level(9)", Level(9).String())
}
