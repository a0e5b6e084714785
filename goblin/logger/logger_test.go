package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(NewHandler(Options{Level: level, NoColor: true, Output: buf})), buf
}

func TestHandler_Format(t *testing.T) {
	tests := []struct {
		name string
		log  func(l *slog.Logger)
		want []string
		skip []string
	}{
		{
			name: "command tag and user",
			log: func(l *slog.Logger) {
				l.Info("Command completed", "type", "cmd", "name", "checkin", "user_name", "ana", "status", "ok")
			},
			want: []string{"[INFO]", "[CMD]", "Command completed [checkin by ana] [Status: ok]"},
			skip: []string{"type=", "user_name="},
		},
		{
			name: "error details",
			log: func(l *slog.Logger) {
				l.Error("Failed to persist document", "type", "db", "error", errors.New("disk full"), "backend", "json:data.json")
			},
			want: []string{"[ERROR]", "[DB]", "Failed to persist document: disk full", "backend=json:data.json"},
		},
		{
			name: "focus tag with handler attrs",
			log: func(l *slog.Logger) {
				l.With("user_id", "42").Info("Focus session started", "type", "focus", "minutes", 25)
			},
			want: []string{"[FOCUS]", "user_id=42", "minutes=25"},
		},
		{
			name: "untagged defaults to system",
			log: func(l *slog.Logger) {
				l.Info("Bot is starting")
			},
			want: []string{"[SYS]", "Bot is starting"},
		},
		{
			name: "gateway chatter is dropped",
			log: func(l *slog.Logger) {
				l.Info("sending heartbeat")
			},
			skip: []string{"heartbeat"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newTestLogger(slog.LevelDebug)
			tt.log(l)
			out := buf.String()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, s := range tt.skip {
				assert.False(t, strings.Contains(out, s), "unexpected %q in %q", s, out)
			}
		})
	}
}

func TestHandler_Level(t *testing.T) {
	l, buf := newTestLogger(slog.LevelWarn)
	l.Info("quiet")
	l.Warn("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}
