package render

import (
	"encoding/json"
	"net/http"
	"strconv"

	"defilend/handler/codes"

	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	JSONWithStatus(w, http.StatusOK, v)
}

// JSONWithStatus render with json and the given status code
func JSONWithStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		logrus.WithError(err).Errorln("render: encode json")
	}
}

// Error write error, non twirp errors are converted with codes.From
func Error(w http.ResponseWriter, err error) {
	twerr := codes.From(err)

	code := codes.Get(twerr.Code())
	if custom := twerr.Meta(codes.CustomCodeKey); custom != "" {
		if v, err := strconv.Atoi(custom); err == nil {
			code = v
		}
	}

	resp := errorResponse{
		Code: code,
		Msg:  twerr.Msg(),
	}

	if twerr.Code() == twirp.Internal && !ResponseErrorMessageAsHint {
		resp.Msg = "internal error"
	}

	if ResponseErrorMessageAsHint {
		resp.Hint = err.Error()
	}

	JSONWithStatus(w, twirp.ServerHTTPStatusFromErrorCode(twerr.Code()), resp)
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, codes.With(twirp.InvalidArgumentError("params", err.Error()), codes.InvalidArguments))
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.NotFoundError(err.Error()))
}
