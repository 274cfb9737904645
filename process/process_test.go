package process

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/parammap"
	"github.com/relex/slog-protocol/defs"
	"github.com/relex/slog-protocol/util"
	"github.com/stretchr/testify/assert"
)

func TestBundle(t *testing.T) {
	bundle, err := NewBundle(map[string]string{
		"disk.full": "disk ${disk} is full",
		"boot":      "system started",
	})
	assert.Nil(t, err)
	assert.Equal(t, []string{"boot", "disk.full"}, bundle.IDs())
	assert.Equal(t, 2, bundle.Len())

	_, err = bundle.Lookup("nothing")
	assert.True(t, errors.Is(err, defs.ErrNotFound))

	_, err = NewBundle(map[string]string{"bad": "${disk"})
	assert.Error(t, err)
	_, err = NewBundle(map[string]string{"": "x"})
	assert.True(t, errors.Is(err, defs.ErrInvalidArgument))
}

func TestBundleYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	assert.Nil(t, os.WriteFile(path, []byte("disk.full: disk ${disk} is full\nlogin: '$user logged in'\n"), 0644))
	bundle, err := LoadBundle(path)
	assert.Nil(t, err)
	assert.Equal(t, []string{"disk.full", "login"}, bundle.IDs())

	var wrapped struct {
		Messages *Bundle `yaml:"messages"`
	}
	err = util.UnmarshalYamlString("messages:\n  bad: ${disk\n", &wrapped)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "yaml line 2:3")
		assert.Contains(t, err.Error(), "message 'bad'")
	}
}

func TestProcessor(t *testing.T) {
	bundle, err := NewBundle(map[string]string{"disk.full": "disk ${disk} is full (${percent}%)"})
	assert.Nil(t, err)
	proc := NewProcessor(logger.Root(), bundle)

	group := parammap.New(nil)
	assert.Nil(t, group.Put("disk", "/dev/sda1"))
	local := parammap.New(group)
	assert.Nil(t, local.Put("percent", 98))
	msg := &base.StaticMessage{MsgLevel: base.LevelWarn, MsgID: "disk.full", MsgParams: local}
	assert.Equal(t, "disk /dev/sda1 is full (98%)", proc.Text(msg))

	t.Run("literal fallback", func(t *testing.T) {
		assert.Equal(t, "user bob logged in", proc.Format("user $user logged in", stringParams("user", "bob")))
		assert.Equal(t, "user ${user} logged in", proc.Format("user ${user} logged in", parammap.EmptyView))
		assert.Equal(t, "broken ${user", proc.Format("broken ${user", stringParams("user", "bob")))
		assert.Equal(t, "value is null", proc.Format("value is $v", nullParams("v")))
	})

	assert.Same(t, EmptyBundle, NewProcessor(logger.Root(), nil).Bundle())
}

func stringParams(key string, value string) parammap.View {
	m := parammap.New(nil)
	_ = m.Put(key, value)
	return m.View()
}

func nullParams(key string) parammap.View {
	m := parammap.New(nil)
	_ = m.Put(key, nil)
	return m.View()
}
