package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jogaaurora/aurora/core"
)

func TestConsoleLogger(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{name: "production drops debug", debug: false, wantDebug: false},
		{name: "development prints debug", debug: true, wantDebug: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewConsoleLogger(log.New(&buf, "", 0), tt.debug)

			l.Debug("request done", map[string]interface{}{"status": 200})
			l.Error("boom")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("DEBUG request done")), out)
			assert.Contains(t, out, "ERROR boom")
			assert.Equal(t, tt.debug, l.IsDebug())
		})
	}
}

func TestNew(t *testing.T) {
	conf := &core.Config{Debug: true}
	_, ok := New(nil, conf).(*ConsoleLogger)
	assert.True(t, ok)

	conf = &core.Config{RollbarToken: "token", TestMode: true, Env: "TEST"}
	_, ok = New(nil, conf).(*RollbarLogger)
	assert.True(t, ok)
}
