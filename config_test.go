package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Defaults(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, 5000, c.GetInt(CfgThreadTimeout))
	assert.Equal(t, 768*1024, c.GetInt(CfgMemLimSoft))
	assert.Equal(t, 1024*1024, c.GetInt(CfgMemLimHard))
	assert.Equal(t, int(Normal), c.GetInt(CfgMemVerbosity))
}

func TestConfig_HasDistinguishesKnownFromUnknown(t *testing.T) {
	c := NewConfig()
	assert.True(t, c.Has(CfgThreadTimeout))
	assert.False(t, c.Has("not_a_real_setting"))
}

func TestConfig_GetWrongType_Panics(t *testing.T) {
	c := NewConfig()
	assert.Panics(t, func() { c.GetString(CfgThreadTimeout) })
}

func TestConfig_GetMissing_Panics(t *testing.T) {
	c := NewConfig()
	assert.Panics(t, func() { c.GetInt("does-not-exist") })
}

func TestConfig_SetThenGet(t *testing.T) {
	c := NewConfig()
	c.SetBool("feature_flag", true)
	assert.True(t, c.GetBool("feature_flag"))
	c.SetString("name", "golisp")
	assert.Equal(t, "golisp", c.GetString("name"))
}
