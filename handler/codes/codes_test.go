package codes

import (
	"errors"
	"net/http"
	"testing"

	"defilend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/twitchtv/twirp"
)

func TestFrom(t *testing.T) {
	cases := []struct {
		err    error
		code   twirp.ErrorCode
		status int
	}{
		{core.ErrOverflow, twirp.OutOfRange, http.StatusBadRequest},
		{core.ErrUnderflow, twirp.OutOfRange, http.StatusBadRequest},
		{core.ErrInsufficientCollateral, twirp.FailedPrecondition, http.StatusPreconditionFailed},
		{core.ErrPoolNotFound, twirp.NotFound, http.StatusNotFound},
		{core.ErrPoolAlreadyExists, twirp.AlreadyExists, http.StatusConflict},
		{db.ErrOptimisticLock, twirp.Aborted, http.StatusConflict},
		{errors.New("boom"), twirp.Internal, http.StatusInternalServerError},
	}

	for _, c := range cases {
		t.Run(c.err.Error(), func(t *testing.T) {
			twerr := From(c.err)
			assert.Equal(t, c.code, twerr.Code())
			assert.Equal(t, c.status, twirp.ServerHTTPStatusFromErrorCode(twerr.Code()))
		})
	}

	assert.Equal(t, core.ErrInsufficientCollateral.String(), From(core.ErrInsufficientCollateral).Meta(CustomCodeKey))
}
