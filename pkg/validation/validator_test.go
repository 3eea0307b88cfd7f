package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type tagged struct {
	Size int    `json:"size" binding:"max=50"`
	Mail string `json:"mail" binding:"email"`
}

func TestToDetails_OtherTagsGetGenericMessage(t *testing.T) {
	Init()
	err := binding.Validator.ValidateStruct(&tagged{Size: 99, Mail: "one"})
	require.Error(t, err)

	d := ToDetails(err)
	assert.Equal(t, "validation failed for 'max' with parameter '50'", d["size"])
	assert.Equal(t, "validation failed for 'email'", d["mail"])
}

func TestToDetails_Required(t *testing.T) {
	Init()
	err := binding.Validator.ValidateStruct(&sample{})
	require.Error(t, err)
	d := ToDetails(err)
	assert.Equal(t, "is required", d["email"])
	assert.Equal(t, "is required", d["password"])
}

func TestToDetails_JSONAndFallback(t *testing.T) {
	var v map[string]any
	err := json.Unmarshal([]byte("{"), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("eof")))
	assert.Nil(t, ToDetails(nil))
}
