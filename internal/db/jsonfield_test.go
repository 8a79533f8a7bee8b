package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeStrings(t *testing.T) {
	assert.Equal(t, `[]`, encodeStrings(nil))
	assert.Equal(t, `[]`, encodeStrings([]string{}))
	assert.Equal(t, `["action","drama"]`, encodeStrings([]string{"action", "drama"}))
}

func TestDecodeStrings(t *testing.T) {
	assert.Equal(t, []string{}, decodeStrings(""))
	assert.Equal(t, []string{}, decodeStrings("null"))
	assert.Equal(t, []string{}, decodeStrings("not json"))
	assert.Equal(t, []string{"rpg", "open world"}, decodeStrings(`["rpg","open world"]`))
}

func TestRoundTripPreservesOrder(t *testing.T) {
	in := []string{"PC", "PS5", "Switch"}
	assert.Equal(t, in, decodeStrings(encodeStrings(in)))
}
