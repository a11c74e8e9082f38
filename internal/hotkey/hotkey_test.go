package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriggerChordFiresOnceAndSuppresses(t *testing.T) {
	triggers := 0
	c := &Config{OnTrigger: func() { triggers++ }}

	v := c.handleKeyDown(KeyV, FlagCommand|FlagOption)
	assert.Equal(t, verdictSuppress, v)
	assert.Equal(t, 1, triggers)
}

func TestTriggerNeedsBothModifiers(t *testing.T) {
	triggers := 0
	c := &Config{OnTrigger: func() { triggers++ }}

	for _, flags := range []Flags{0, FlagCommand, FlagOption, FlagShift | FlagCommand} {
		v := c.handleKeyDown(KeyV, flags)
		assert.Equal(t, verdictPass, v, "flags %x must pass through", flags)
	}
	assert.Zero(t, triggers)
}

func TestWrongKeyPassesThrough(t *testing.T) {
	triggers := 0
	c := &Config{OnTrigger: func() { triggers++ }}

	v := c.handleKeyDown(KeyC, FlagCommand|FlagOption)
	assert.Equal(t, verdictPass, v)
	assert.Zero(t, triggers)
}

func TestQuitChord(t *testing.T) {
	quits := 0
	c := &Config{OnQuit: func() { quits++ }}

	v := c.handleKeyDown(KeyC, FlagControl)
	assert.Equal(t, verdictSuppress, v)
	assert.Equal(t, 1, quits)
}

func TestCustomTriggerKey(t *testing.T) {
	triggers := 0
	c := &Config{TriggerKey: KeyC, OnTrigger: func() { triggers++ }}

	assert.Equal(t, verdictSuppress, c.handleKeyDown(KeyC, FlagCommand|FlagOption))
	assert.Equal(t, 1, triggers)

	// Default key no longer triggers.
	assert.Equal(t, verdictPass, c.handleKeyDown(KeyV, FlagCommand|FlagOption))
}

func TestOnKeyRoutesRemainingKeys(t *testing.T) {
	var seen []uint16
	c := &Config{
		OnTrigger: func() {},
		OnKey: func(code uint16, _ Flags) bool {
			seen = append(seen, code)
			return code == KeyEscape
		},
	}

	assert.Equal(t, verdictSuppress, c.handleKeyDown(KeyEscape, 0))
	assert.Equal(t, verdictPass, c.handleKeyDown(KeyDown, 0))
	assert.Equal(t, []uint16{KeyEscape, KeyDown}, seen)

	// The summon chord never reaches OnKey.
	c.handleKeyDown(KeyV, FlagCommand|FlagOption)
	assert.Len(t, seen, 2)
}
