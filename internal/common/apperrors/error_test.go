package apperrors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Run("Chaining", func(t *testing.T) {
		ErrBase := New("base error")
		assert.Equal(t, "base error", ErrBase.Error())
		assert.Equal(t, "msg", ErrBase.New("msg").Error())
		assert.ErrorIs(t, ErrBase, ErrBase)

		ErrChild := ErrBase.New("child")
		assert.Equal(t, "child", ErrChild.Error())
		assert.ErrorIs(t, ErrChild, ErrBase)

		ErrOther := New("other error")
		ErrWrapped := ErrChild.Err(ErrOther)
		assert.Equal(t, "child", ErrWrapped.Error())
		assert.ErrorIs(t, ErrWrapped, ErrBase)
		assert.ErrorIs(t, ErrWrapped, ErrOther)

		err := errors.New("i/o failure")
		ErrWrapped = ErrBase.New("child").MsgErr("msg", err)
		assert.Equal(t, "msg", ErrWrapped.Error())
		assert.ErrorIs(t, ErrWrapped, ErrBase)
		assert.ErrorIs(t, ErrWrapped, err)
	})

	t.Run("StatusCode", func(t *testing.T) {
		ErrBase := New("base").SetStatusCode(http.StatusConflict)
		assert.Equal(t, http.StatusConflict, ErrBase.StatusCode())
		// derived errors inherit the code until overridden
		assert.Equal(t, http.StatusConflict, ErrBase.New("child").StatusCode())
		assert.Equal(t, http.StatusNotFound,
			ErrBase.New("child").SetStatusCode(http.StatusNotFound).StatusCode())
	})

	t.Run("ExpandError", func(t *testing.T) {
		err := errors.New("inner detail")
		e := New("outer").Err(err)
		assert.Equal(t, "outer", e.ErrorAll())
		e = e.SetExpandError(true)
		assert.Equal(t, "outer: inner detail", e.ErrorAll())
	})
}
