package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("app_user"))
	assert.Error(t, ValidateUsername("1bad"))
	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername("has space"))
}
