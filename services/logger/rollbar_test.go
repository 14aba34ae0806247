package logsvc

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/springreviewer/admin/core"
)

func TestRollbarLogger_prepare(t *testing.T) {
	errBoom := errors.New("boom")
	data := map[string]interface{}{"path": "/v1/reviews"}

	tests := []struct {
		name string
		args []interface{}
		want []interface{}
	}{
		{
			name: "no args",
			want: []interface{}{"msg"},
		},
		{
			name: "operator without request",
			args: []interface{}{errBoom, core.Operator{Username: "root"}},
			want: []interface{}{"msg", errBoom},
		},
		{
			name: "request id merged into custom data",
			args: []interface{}{errBoom, data, core.Operator{Username: "root", RequestID: "req-1"}},
			want: []interface{}{"msg", errBoom, map[string]interface{}{"path": "/v1/reviews", "requestId": "req-1"}},
		},
		{
			name: "request id alone",
			args: []interface{}{core.Operator{RequestID: "req-2"}},
			want: []interface{}{"msg", map[string]interface{}{"requestId": "req-2"}},
		},
		{
			name: "only the first operator counts",
			args: []interface{}{core.Operator{RequestID: "a"}, core.Operator{RequestID: "b"}},
			want: []interface{}{"msg", map[string]interface{}{"requestId": "a"}},
		},
	}

	l := NewLoggerMock()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, l.prepare("msg", tc.args))
		})
	}
	assert.Equal(t, map[string]interface{}{"path": "/v1/reviews"}, data, "caller data is not modified")
}

func TestRollbarLogger_print(t *testing.T) {
	NewLoggerMock()
	var buf bytes.Buffer
	l := RollbarLogger{std: log.New(&buf, "", 0)}

	l.Warn("upstream failure", errors.New("502"), core.Operator{Username: "root", RequestID: "req-1"})
	assert.Equal(t, "[req-1 root] upstream failure\n502\n", buf.String())

	buf.Reset()
	l.Info("listening", core.Operator{})
	assert.Equal(t, "listening\n", buf.String())
}
